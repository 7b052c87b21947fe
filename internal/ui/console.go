package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/temirov/giberg/internal/hosting"
	"github.com/temirov/giberg/internal/repos/shared"
)

const (
	downloadStartedTemplateConstant   = "downloading '%s' from %s..."
	downloadCompletedTemplateConstant = "downloaded '%s' from %s"
	uploadStartedTemplateConstant     = "uploading '%s' to %s..."
	uploadCompletedTemplateConstant   = "uploaded '%s' to %s"
	deleteStartedTemplateConstant     = "deleting '%s' from %s..."
	deleteCompletedTemplateConstant   = "deleted '%s' from %s"
	failureTemplateConstant           = "%s error: %s"
	farewellMessageConstant           = "\nsee you later!"
	interruptedMessageConstant        = "\nhandle exit signal"
	downloadGerundConstant            = "downloading"
	uploadGerundConstant              = "uploading"
	deleteGerundConstant              = "deleting"
	colorModeAutoConstant             = "auto"
	colorModeAlwaysConstant           = "always"
	colorModeNeverConstant            = "never"
	unsupportedColorModeTemplate      = "unsupported color mode: %s"
)

// Color names one of the bold console colors.
type Color int

// Console colors.
const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
)

var colorAttributes = map[Color]color.Attribute{
	ColorRed:   color.FgRed,
	ColorGreen: color.FgGreen,
	ColorBlue:  color.FgBlue,
}

// ColorMode decides whether console lines carry color sequences.
type ColorMode string

// Supported color modes.
const (
	ColorModeAuto   ColorMode = ColorMode(colorModeAutoConstant)
	ColorModeAlways ColorMode = ColorMode(colorModeAlwaysConstant)
	ColorModeNever  ColorMode = ColorMode(colorModeNeverConstant)
)

// ParseColorMode normalizes a configured color mode. An empty value selects auto.
func ParseColorMode(rawMode string) (ColorMode, error) {
	normalizedMode := ColorMode(strings.ToLower(strings.TrimSpace(rawMode)))
	switch normalizedMode {
	case "":
		return ColorModeAuto, nil
	case ColorModeAuto, ColorModeAlways, ColorModeNever:
		return normalizedMode, nil
	default:
		return "", fmt.Errorf(unsupportedColorModeTemplate, rawMode)
	}
}

// ColorsEnabled reports whether output written to writer should be colored under mode.
func ColorsEnabled(writer io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorModeAlways:
		return true
	case ColorModeNever:
		return false
	}
	terminalFile, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return term.IsTerminal(int(terminalFile.Fd()))
}

// Console prints the colored status lines of a mirror run and implements shared.StatusReporter.
type Console struct {
	output  io.Writer
	palette map[Color]*color.Color
	mutex   sync.Mutex
}

// NewConsole constructs a Console writing to output. Colors are forced on or off regardless of the NO_COLOR
// environment variable; ColorsEnabled is where the terminal decision is made.
func NewConsole(output io.Writer, colorsEnabled bool) *Console {
	if output == nil {
		output = io.Discard
	}
	palette := make(map[Color]*color.Color, len(colorAttributes))
	for consoleColor, attribute := range colorAttributes {
		painter := color.New(color.Bold, attribute)
		if colorsEnabled {
			painter.EnableColor()
		} else {
			painter.DisableColor()
		}
		palette[consoleColor] = painter
	}
	return &Console{output: output, palette: palette}
}

// Print writes message as one line in color.
func (console *Console) Print(consoleColor Color, message string) {
	if console == nil {
		return
	}
	console.mutex.Lock()
	defer console.mutex.Unlock()
	painter, known := console.palette[consoleColor]
	if !known {
		fmt.Fprintln(console.output, message)
		return
	}
	fmt.Fprintln(console.output, painter.Sprint(message))
}

// RepositoryStarted announces work on a repository.
func (console *Console) RepositoryStarted(action shared.RepositoryAction, repository string, provider hosting.ProviderName) {
	switch action {
	case shared.RepositoryActionDownload:
		console.Print(ColorBlue, fmt.Sprintf(downloadStartedTemplateConstant, repository, provider))
	case shared.RepositoryActionUpload:
		console.Print(ColorBlue, fmt.Sprintf(uploadStartedTemplateConstant, repository, provider))
	case shared.RepositoryActionDelete:
		console.Print(ColorBlue, fmt.Sprintf(deleteStartedTemplateConstant, repository, provider))
	}
}

// RepositoryCompleted announces a finished repository.
func (console *Console) RepositoryCompleted(action shared.RepositoryAction, repository string, provider hosting.ProviderName) {
	switch action {
	case shared.RepositoryActionDownload:
		console.Print(ColorBlue, fmt.Sprintf(downloadCompletedTemplateConstant, repository, provider))
	case shared.RepositoryActionUpload:
		console.Print(ColorGreen, fmt.Sprintf(uploadCompletedTemplateConstant, repository, provider))
	case shared.RepositoryActionDelete:
		console.Print(ColorGreen, fmt.Sprintf(deleteCompletedTemplateConstant, repository, provider))
	}
}

// ReportFailure prints the single red error line for a failed run.
func (console *Console) ReportFailure(action shared.RepositoryAction, failure error) {
	if failure == nil {
		return
	}
	console.Print(ColorRed, fmt.Sprintf(failureTemplateConstant, actionGerund(action), strings.TrimRightFunc(failure.Error(), isTrailingSpace)))
}

// ReportInterrupted prints the red interrupt line.
func (console *Console) ReportInterrupted() {
	console.Print(ColorRed, interruptedMessageConstant)
}

// Farewell prints the closing line printed on every exit path.
func (console *Console) Farewell() {
	console.Print(ColorBlue, farewellMessageConstant)
}

func actionGerund(action shared.RepositoryAction) string {
	switch action {
	case shared.RepositoryActionDownload:
		return downloadGerundConstant
	case shared.RepositoryActionUpload:
		return uploadGerundConstant
	case shared.RepositoryActionDelete:
		return deleteGerundConstant
	default:
		return string(action)
	}
}

func isTrailingSpace(character rune) bool {
	return character == ' ' || character == '\n' || character == '\t' || character == '\r'
}
