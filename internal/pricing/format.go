package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var clpPrinter = message.NewPrinter(language.MustParse("es-CL"))

// FormatCLP renders a whole-peso amount in Chilean convention, e.g. $1.234.567.
func FormatCLP(amount int) string {
	return clpPrinter.Sprintf("$%v", number.Decimal(amount))
}
