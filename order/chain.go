package order

import (
	"fmt"
	"strings"
)

// EvaluateChain folds truth left to right. conds[i-1].IsConjunction picks
// AND or OR for truth[i]; the last link's flag is never read. An empty
// chain does not gate the order.
func EvaluateChain(conds []Condition, truth []bool) (bool, error) {
	if len(conds) != len(truth) {
		return false, fmt.Errorf("%w: %d conditions, %d values", ErrChainLength, len(conds), len(truth))
	}
	if len(conds) == 0 {
		return true, nil
	}
	acc := truth[0]
	for i := 1; i < len(truth); i++ {
		if conds[i-1].IsConjunction {
			acc = acc && truth[i]
		} else {
			acc = acc || truth[i]
		}
	}
	return acc, nil
}

// ChainString renders "price(...) AND time(...) OR ...".
func ChainString(conds []Condition) string {
	var b strings.Builder
	for i, c := range conds {
		if i > 0 {
			b.WriteString(" " + conds[i-1].Connector() + " ")
		}
		b.WriteString(c.String())
	}
	return b.String()
}
