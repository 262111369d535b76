package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/studyboard/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeExam   Type = "exam"
	TypeLog    Type = "log"
	TypeDone   Type = "done"
	TypeRemove Type = "rm"
	TypeTheme  Type = "theme"
	TypeExport Type = "export"
	TypeImport Type = "import"
	TypeFocus  Type = "focus"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type AddArgs struct {
	Subject     string
	Description string
	Due         string
	Priority    model.Priority
	Done        bool
}

type ExamArgs struct {
	Date    string
	Subject string
	Topic   string
}

type LogArgs struct {
	Minutes int
	Subject string
	Date    string
}

// Target is a 1-based row number in the current view or a record id.
type Target struct {
	Index int
	ID    string
}

func parseTarget(s string) Target {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return Target{Index: n}
	}
	return Target{ID: s}
}

type DoneArgs struct {
	Target Target
}

type RemoveKind string

const (
	RemoveTask    RemoveKind = "task"
	RemoveExam    RemoveKind = "exam"
	RemoveSession RemoveKind = "session"
)

type RemoveArgs struct {
	Kind   RemoveKind
	Target Target
}

type ThemeArgs struct {
	// Theme is empty for toggle.
	Theme model.Theme
}

type ExportArgs struct {
	Dir string
}

type ImportArgs struct {
	Path string
}

type FocusAction string

const (
	FocusToggle FocusAction = "toggle"
	FocusStart  FocusAction = "start"
	FocusStop   FocusAction = "stop"
	FocusCancel FocusAction = "cancel"
)

type FocusArgs struct {
	Action FocusAction
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Exam   *ExamArgs
	Log    *LogArgs
	Done   *DoneArgs
	Remove *RemoveArgs
	Theme  *ThemeArgs
	Export *ExportArgs
	Import *ImportArgs
	Focus  *FocusArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeExam:
		return parseExam(input, args)
	case TypeLog:
		return parseLog(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeRemove, "del":
		return parseRemove(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeExport:
		return parseExport(input, args)
	case TypeImport:
		return parseImport(input, args)
	case TypeFocus:
		return parseFocus(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// splitOptions separates key:value tokens from the free text around them.
func splitOptions(args []string, keys ...string) (rest []string, opts map[string]string, flags map[string]bool) {
	opts = make(map[string]string)
	flags = make(map[string]bool)
	for _, arg := range args {
		lower := strings.ToLower(arg)
		matched := false
		for _, k := range keys {
			if strings.HasPrefix(lower, k+":") {
				opts[k] = strings.TrimSpace(arg[len(k)+1:])
				matched = true
				break
			}
			if lower == k {
				flags[k] = true
				matched = true
				break
			}
		}
		if !matched {
			rest = append(rest, arg)
		}
	}
	return rest, opts, flags
}

func parseAdd(raw string, args []string) (Command, error) {
	rest, opts, flags := splitOptions(args, "due", "prio", "done")
	text := strings.TrimSpace(strings.Join(rest, " "))
	if text == "" {
		return Command{}, invalid("add requires <subject>: <description>")
	}
	out := AddArgs{Done: flags["done"]}
	if subject, desc, ok := strings.Cut(text, ":"); ok {
		out.Subject = strings.TrimSpace(subject)
		out.Description = strings.TrimSpace(desc)
	} else {
		out.Subject = text
	}
	if due, ok := opts["due"]; ok {
		if !IsDateToken(due) {
			return Command{}, invalid("due: unknown date %q", due)
		}
		out.Due = due
	}
	if p, ok := opts["prio"]; ok {
		prio, err := parsePriority(p)
		if err != nil {
			return Command{}, err
		}
		out.Priority = prio
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parsePriority(s string) (model.Priority, error) {
	switch strings.ToLower(s) {
	case "hoch", "high", "h", "3":
		return model.PriorityHigh, nil
	case "mittel", "medium", "m", "2":
		return model.PriorityMedium, nil
	case "niedrig", "low", "n", "l", "1":
		return model.PriorityLow, nil
	}
	return "", invalid("prio: unknown priority %q", s)
}

func parseExam(raw string, args []string) (Command, error) {
	rest, opts, _ := splitOptions(args, "topic")
	if len(rest) < 2 {
		return Command{}, invalid("exam requires <date> <subject>")
	}
	if !IsDateToken(rest[0]) {
		return Command{}, invalid("exam: unknown date %q", rest[0])
	}
	out := ExamArgs{Date: rest[0], Subject: rest[1]}
	topic := strings.Join(rest[2:], " ")
	if t, ok := opts["topic"]; ok {
		topic = strings.TrimSpace(t + " " + topic)
	}
	out.Topic = strings.TrimSpace(topic)
	return Command{Type: TypeExam, Raw: raw, Exam: &out}, nil
}

func parseLog(raw string, args []string) (Command, error) {
	rest, opts, _ := splitOptions(args, "date")
	if len(rest) < 1 {
		return Command{}, invalid("log requires <minutes> [subject]")
	}
	minutes, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(rest[0]), "m"))
	if err != nil || minutes <= 0 {
		return Command{}, invalid("log: minutes must be a positive number, got %q", rest[0])
	}
	out := LogArgs{Minutes: minutes, Subject: strings.Join(rest[1:], " ")}
	if d, ok := opts["date"]; ok {
		if !IsDateToken(d) {
			return Command{}, invalid("date: unknown date %q", d)
		}
		out.Date = d
	}
	return Command{Type: TypeLog, Raw: raw, Log: &out}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("done requires a row number or id")
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: parseTarget(args[0])}}, nil
}

func parseRemove(raw string, args []string) (Command, error) {
	kind := RemoveTask
	if len(args) == 2 {
		switch RemoveKind(strings.ToLower(args[0])) {
		case RemoveTask, RemoveExam, RemoveSession:
			kind = RemoveKind(strings.ToLower(args[0]))
		default:
			return Command{}, invalid("rm: unknown kind %q", args[0])
		}
		args = args[1:]
	}
	if len(args) != 1 {
		return Command{}, invalid("rm requires [task|exam|session] <row|id>")
	}
	return Command{Type: TypeRemove, Raw: raw, Remove: &RemoveArgs{Kind: kind, Target: parseTarget(args[0])}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) == 0 || strings.EqualFold(args[0], "toggle") {
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{}}, nil
	}
	th := model.Theme(strings.ToLower(args[0]))
	if !th.IsValid() {
		return Command{}, invalid("theme must be light, dark, system or toggle")
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: th}}, nil
}

func parseExport(raw string, args []string) (Command, error) {
	if len(args) > 1 {
		return Command{}, invalid("export takes at most one directory")
	}
	out := ExportArgs{}
	if len(args) == 1 {
		out.Dir = args[0]
	}
	return Command{Type: TypeExport, Raw: raw, Export: &out}, nil
}

func parseImport(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("import requires a file path")
	}
	return Command{Type: TypeImport, Raw: raw, Import: &ImportArgs{Path: strings.Join(args, " ")}}, nil
}

func parseFocus(raw string, args []string) (Command, error) {
	action := FocusToggle
	if len(args) > 0 {
		switch FocusAction(strings.ToLower(args[0])) {
		case FocusStart, FocusStop, FocusCancel, FocusToggle:
			action = FocusAction(strings.ToLower(args[0]))
		default:
			return Command{}, invalid("focus accepts start, stop or cancel")
		}
	}
	return Command{Type: TypeFocus, Raw: raw, Focus: &FocusArgs{Action: action}}, nil
}
