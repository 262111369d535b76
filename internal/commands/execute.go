package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Exam   func(ExamArgs) (Result, error)
	Log    func(LogArgs) (Result, error)
	Done   func(DoneArgs) (Result, error)
	Remove func(RemoveArgs) (Result, error)
	Theme  func(ThemeArgs) (Result, error)
	Export func(ExportArgs) (Result, error)
	Import func(ImportArgs) (Result, error)
	Focus  func(FocusArgs) (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeExam:
		if handlers.Exam == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Exam(*cmd.Exam)
	case TypeLog:
		if handlers.Log == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Log(*cmd.Log)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done(*cmd.Done)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Remove(*cmd.Remove)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Theme(*cmd.Theme)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Export(*cmd.Export)
	case TypeImport:
		if handlers.Import == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Import(*cmd.Import)
	case TypeFocus:
		if handlers.Focus == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Focus(*cmd.Focus)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
