package resolver

import "strings"

// StockInfoPrompt asks for a company profile in a fixed field layout. The
// ticker is appended to the end.
const StockInfoPrompt = `Return a prompt only in this format and nothing else using the stock symbol provided at the end unless you know nothing in which case return "Information is unavailable":

Symbol:
Exchange:

Description:

Industry:
Sector:
Address:
Website:
Market Cap:
Employees:

Stock symbol: `

// BuildStockInfoPrompt returns the prompt for ticker, normalized to upper case.
func BuildStockInfoPrompt(ticker string) string {
	return StockInfoPrompt + strings.ToUpper(strings.TrimSpace(ticker))
}
