package agent

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/traefik/yaegi/interp"

	"agentsville/pkg/utils"
)

const maxExpressionLength = 256

var (
	arithmeticCharset = regexp.MustCompile(`^[0-9+\-*/(). \t]+$`)
	numberLiteral     = regexp.MustCompile(`[0-9]*\.?[0-9]+\.?`)
)

// Calculator evaluates arithmetic expressions in a bare Go interpreter. No
// symbols are loaded, and input is limited to digits, operators, parentheses
// and dots, so nothing but arithmetic can run.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

func (c *Calculator) Evaluate(ctx context.Context, expression string) (result float64, err error) {
	expr := strings.TrimSpace(expression)
	if expr == "" {
		return 0, fmt.Errorf("empty expression: %w", utils.ErrInvalidInput)
	}
	if len(expr) > maxExpressionLength {
		return 0, fmt.Errorf("expression longer than %d characters: %w", maxExpressionLength, utils.ErrInvalidInput)
	}
	if !arithmeticCharset.MatchString(expr) {
		return 0, fmt.Errorf("expression %q contains characters outside +-*/() and numbers: %w", expr, utils.ErrInvalidInput)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluate %q: %v", expr, r)
		}
	}()

	i := interp.New(interp.Options{})
	v, err := i.EvalWithContext(ctx, "float64("+floatLiterals(expr)+")")
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", expr, err)
	}
	if !v.IsValid() || v.Kind() != reflect.Float64 {
		return 0, fmt.Errorf("evaluate %q: not a number", expr)
	}

	result = v.Float()
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("evaluate %q: result is not finite", expr)
	}
	return result, nil
}

// floatLiterals rewrites every number as a float literal so that 7/2 is 3.5.
func floatLiterals(expr string) string {
	return numberLiteral.ReplaceAllStringFunc(expr, func(n string) string {
		if strings.HasPrefix(n, ".") {
			n = "0" + n
		}
		if strings.HasSuffix(n, ".") {
			n += "0"
		}
		if !strings.Contains(n, ".") {
			n += ".0"
		}
		return n
	})
}
