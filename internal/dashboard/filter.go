package dashboard

import (
	"sort"

	"trade-dashboard-go/internal/models"
)

// AllContracts is the sentinel filter value that selects every trade.
const AllContracts = "all"

// Contracts returns the distinct contract identifiers present in the trade
// list, sorted lexicographically. The "all" sentinel is not included; the
// view layer prepends it.
func Contracts(trades []models.Trade) []string {
	seen := make(map[string]struct{}, len(trades))
	contracts := make([]string, 0, len(trades))
	for _, t := range trades {
		if _, ok := seen[t.Contract]; ok {
			continue
		}
		seen[t.Contract] = struct{}{}
		contracts = append(contracts, t.Contract)
	}
	sort.Strings(contracts)
	return contracts
}

// FilterByContract returns the trades matching the selected contract,
// preserving input order. The "all" sentinel returns the input unchanged.
func FilterByContract(trades []models.Trade, contract string) []models.Trade {
	if contract == AllContracts || contract == "" {
		return trades
	}
	filtered := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Contract == contract {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
