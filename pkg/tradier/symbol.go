package tradier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)
)

// BuildOptionSymbol assembles an OCC option symbol: underlying, YYMMDD
// expiration, C/P, and the strike in thousandths zero-padded to 8 digits.
// AAPL 2024-01-19 170.5 call -> AAPL240119C00170500.
func BuildOptionSymbol(symbol, expiration string, strike float64, optionType OptionType) (string, error) {
	if !isValidDate(expiration) {
		return "", &InvalidExpirationError{Expiration: expiration}
	}
	if optionType != OptionTypeCall && optionType != OptionTypePut {
		return "", &InvalidOptionTypeError{OptionType: string(optionType)}
	}

	// Strike encoding goes through decimal so 170.55*1000 lands on 170550
	// and not 170549.999...
	milli := decimal.NewFromFloat(strike).Mul(decimal.NewFromInt(1000)).Round(0).IntPart()

	compact := strings.ReplaceAll(expiration, "-", "")[2:]
	letter := strings.ToUpper(string(optionType))[0:1]

	return fmt.Sprintf("%s%s%s%08d", strings.ToUpper(symbol), compact, letter, milli), nil
}

func isValidDate(date string) bool {
	return dateRe.MatchString(date)
}

func isValidDateTime(dt string) bool {
	return dateTimeRe.MatchString(dt)
}
