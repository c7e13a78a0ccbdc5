package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/scott-cotton/cli"
	"github.com/signadot/rmarshal/pipeline"
	"github.com/signadot/rmarshal/unit"
)

func TestTopicHelp(t *testing.T) {
	for name, text := range topics {
		if !strings.HasPrefix(text, "rmarshal ") {
			t.Errorf("topic %s does not start with a usage line", name)
		}
		if got := topicHelp(name); !strings.HasPrefix(got, text) {
			t.Errorf("topic %s: wrong text", name)
		}
	}
	if got := topicHelp("toml"); !strings.HasSuffix(got, "Paths ending in .toml are toml by default.") {
		t.Errorf("toml topic: got %q", got)
	}
	if got := topicHelp("plain"); got != topics["plain"] {
		t.Errorf("plain topic: got %q", got)
	}
	if got := topicHelp("nope"); !strings.Contains(got, "check, concat, copy") {
		t.Errorf("unknown topic: got %q", got)
	}
}

func TestReport(t *testing.T) {
	if err := report(nil); err != nil {
		t.Errorf("nil: got %v", err)
	}
	err := report(fmt.Errorf("%w: %w", pipeline.ErrDecode, errors.New("x")))
	var code cli.ExitCodeErr
	if !errors.As(err, &code) || int(code) != pipeline.ExitWrongInput {
		t.Errorf("got %v", err)
	}
}

func TestPrintErr(t *testing.T) {
	buf := &bytes.Buffer{}
	printErr(buf, fmt.Errorf("%w: --bogus", unit.ErrParameter))
	if want := "rmarshal: wrong parameter: --bogus\n"; buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}
