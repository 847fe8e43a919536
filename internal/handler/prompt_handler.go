package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"github.com/fakhrymubarak/weather-cli/internal/presenter"
	"github.com/fakhrymubarak/weather-cli/internal/service"
	"go.uber.org/zap"
)

// ErrInputUnreadable is returned when standard input fails for a reason other than end of stream.
var ErrInputUnreadable = errors.New("cannot read input")

const (
	welcomeBanner  = "Welcome to Go Weather CLI"
	cityPrompt     = "Enter the name of the city: "
	countryPrompt  = "Enter the country code (e.g., UK for United Kingdom):"
	continuePrompt = "Do you want to search for another city? (y/n):"
	farewell       = "Thank you"
)

type state int

const (
	statePrompting state = iota
	stateDone
)

// PromptHandler runs the interactive lookup loop.
type PromptHandler struct {
	WeatherService service.WeatherServiceInterface
	Presenter      *presenter.Presenter
	Log            *zap.SugaredLogger

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// NewPromptHandler wires a handler to the given streams. A nil service uses the configured one.
func NewPromptHandler(svc service.WeatherServiceInterface, p *presenter.Presenter, in io.Reader, out, errOut io.Writer) *PromptHandler {
	if svc == nil {
		svc = service.NewWeatherService()
	}
	if p == nil {
		p = presenter.New(!config.IsColorDisabled())
	}
	return &PromptHandler{
		WeatherService: svc,
		Presenter:      p,
		Log:            config.GetLogger(),
		in:             bufio.NewReader(in),
		out:            out,
		errOut:         errOut,
	}
}

// ShouldContinue reports whether an answer to the continuation prompt asks for another lookup.
// Only "y" counts, ignoring case and surrounding whitespace.
func ShouldContinue(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

// Run prompts until the user declines another lookup. It returns nil on a normal finish,
// ErrInputUnreadable if input breaks, or the context error if ctx ends first.
func (h *PromptHandler) Run(ctx context.Context) error {
	fmt.Fprintln(h.out, h.Presenter.Banner(welcomeBanner))

	st := statePrompting
	for st == statePrompting {
		if err := ctx.Err(); err != nil {
			return err
		}

		city, err := h.ask(cityPrompt)
		if err != nil {
			return err
		}
		country, err := h.ask(countryPrompt)
		if err != nil {
			return err
		}

		h.lookup(ctx, strings.TrimSpace(city), strings.TrimSpace(country))
		if err := ctx.Err(); err != nil {
			return err
		}

		answer, err := h.ask(continuePrompt)
		if err != nil {
			return err
		}
		if !ShouldContinue(answer) {
			st = stateDone
		}
	}

	fmt.Fprintln(h.out, farewell)
	return nil
}

func (h *PromptHandler) lookup(ctx context.Context, city, country string) {
	weather, err := h.WeatherService.GetWeather(ctx, city, country)
	if err == nil {
		var report string
		report, err = h.Presenter.Render(weather)
		if err == nil {
			fmt.Fprintln(h.out, report)
			return
		}
	}
	fmt.Fprintf(h.errOut, "Error: %v\n", err)
}

// ask prints a prompt and reads one line. End of stream yields whatever was read.
func (h *PromptHandler) ask(prompt string) (string, error) {
	fmt.Fprintln(h.out, h.Presenter.Prompt(prompt))
	line, err := h.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		h.Log.Errorw("Reading input failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	return line, nil
}
