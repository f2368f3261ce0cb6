package parser

import (
	"math"
	"strconv"
)

func parseIntLiteral(text string) int64 {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return math.MaxInt64
	}
	return v
}

func parseFloatLiteral(text string) float64 {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return v
}
