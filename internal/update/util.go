package update

import (
	"strings"

	"github.com/sandeepkv93/studyboard/internal/model"
	"github.com/sandeepkv93/studyboard/internal/theme"
)

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func nextTheme(t model.Theme) model.Theme {
	return theme.Next(t)
}
