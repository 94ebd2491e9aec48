package style

import (
	"errors"
	"fmt"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrMalformed is returned by Lint for text the CSS grammar rejects.
var ErrMalformed = errors.New("malformed css")

// Lint checks generated text against the CSS grammar: every block must be
// closed and every declaration must carry a value. It is a sanity check for
// builder output, not a parser into the style model.
func Lint(text string) error {
	p := css.NewParser(parse.NewInputString(text), false)

	depth := 0
	for {
		gt, _, data := p.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && errors.Is(err, io.EOF) {
				if depth != 0 {
					return fmt.Errorf("%d unclosed block(s): %w", depth, ErrMalformed)
				}
				return nil
			} else if err != nil {
				return fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			return fmt.Errorf("unexpected %q: %w", string(data), ErrMalformed)
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		case css.DeclarationGrammar:
			if len(p.Values()) == 0 {
				return fmt.Errorf("declaration %q has no value: %w", string(data), ErrMalformed)
			}
		}
	}
}
