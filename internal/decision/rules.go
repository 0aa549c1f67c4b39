package decision

import (
	"fmt"
	"strconv"
	"strings"
)

// Scores holds the named sub-scores a decision rule condition may reference.
type Scores struct {
	Quality        float64
	Performance    float64
	Security       float64
	RiskComplement float64
	Overall        float64
}

func (s Scores) lookup(name string) (float64, bool) {
	switch name {
	case "overall_score":
		return s.Overall, true
	case "quality_score":
		return s.Quality, true
	case "performance_score":
		return s.Performance, true
	case "security_score":
		return s.Security, true
	case "risk_complement":
		return s.RiskComplement, true
	default:
		return 0, false
	}
}

// EvalCondition evaluates a decision rule condition against the sub-scores.
//
// The grammar is a conjunction of comparisons:
//
//	condition  = comparison { ("&&" | "and") comparison }
//	comparison = score-name op number
//	op         = ">=" | ">" | "<=" | "<" | "==" | "!="
//
// Score names are overall_score, quality_score, performance_score,
// security_score and risk_complement. Malformed conditions return an error
// so the engine can skip the rule instead of silently matching.
func EvalCondition(condition string, scores Scores) (bool, error) {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return false, fmt.Errorf("empty rule condition")
	}

	// Normalize "and" to "&&" so a single split handles both spellings.
	normalized := strings.ReplaceAll(condition, " and ", " && ")

	for _, clause := range strings.Split(normalized, "&&") {
		ok, err := evalComparison(strings.TrimSpace(clause), scores)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func evalComparison(clause string, scores Scores) (bool, error) {
	fields := strings.Fields(clause)
	if len(fields) != 3 {
		return false, fmt.Errorf("malformed comparison %q", clause)
	}

	left, ok := scores.lookup(fields[0])
	if !ok {
		return false, fmt.Errorf("unknown score %q in condition", fields[0])
	}

	right, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return false, fmt.Errorf("malformed number %q in condition", fields[2])
	}

	switch fields[1] {
	case ">=":
		return left >= right, nil
	case ">":
		return left > right, nil
	case "<=":
		return left <= right, nil
	case "<":
		return left < right, nil
	case "==":
		return left == right, nil
	case "!=":
		return left != right, nil
	default:
		return false, fmt.Errorf("unknown operator %q in condition", fields[1])
	}
}
