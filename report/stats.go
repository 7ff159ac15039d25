package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chuta/celo-invoice-app-sub000/model"
)

// TopClientCount limits the top-client ranking.
const TopClientCount = 5

// TrendMonths is the length of the trailing monthly trend window.
const TrendMonths = 6

// ClientRevenue is one entry of the top-client ranking.
type ClientRevenue struct {
	ClientID     string          `json:"clientId"`
	ClientName   string          `json:"clientName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	InvoiceCount int             `json:"invoiceCount"`
}

// MonthlyTrend is one calendar month of revenue.
type MonthlyTrend struct {
	Month        string          `json:"month"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	InvoiceCount int             `json:"invoiceCount"`
}

// Statistics summarizes a (filtered) invoice collection.
//
// Revenue figures (TotalRevenue, TopClients, MonthlyTrends) count only
// approved and paid invoices. AverageAmount is the mean over every
// record regardless of status. The asymmetry is deliberate.
type Statistics struct {
	TotalInvoices      int                         `json:"totalInvoices"`
	TotalRevenue       decimal.Decimal             `json:"totalRevenue"`
	AverageAmount      decimal.Decimal             `json:"averageAmount"`
	StatusDistribution map[model.InvoiceStatus]int `json:"statusDistribution"`
	TopClients         []ClientRevenue             `json:"topClients"`
	MonthlyTrends      []MonthlyTrend              `json:"monthlyTrends"`
}

// CalculateStatistics reduces a record collection into summary metrics.
// The trailing trend window ends at the calendar month of now. A nil or
// empty collection yields zero values for everything except
// MonthlyTrends, which always has TrendMonths entries.
func CalculateStatistics(records []model.Invoice, now time.Time) Statistics {
	stats := Statistics{
		TotalRevenue:       decimal.Zero,
		AverageAmount:      decimal.Zero,
		StatusDistribution: make(map[model.InvoiceStatus]int),
		TopClients:         []ClientRevenue{},
		MonthlyTrends:      emptyTrends(now),
	}
	if len(records) == 0 {
		return stats
	}

	stats.TotalInvoices = len(records)

	sum := decimal.Zero
	byClient := map[string]*ClientRevenue{}
	clientOrder := []string{}
	byMonth := map[string]int{} // month key -> index into MonthlyTrends

	for i := range stats.MonthlyTrends {
		byMonth[stats.MonthlyTrends[i].Month] = i
	}

	for _, rec := range records {
		sum = sum.Add(rec.Amount)
		stats.StatusDistribution[rec.Status]++

		if !rec.Status.CountsAsRevenue() {
			continue
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(rec.Amount)

		cr, ok := byClient[rec.ClientID]
		if !ok {
			cr = &ClientRevenue{
				ClientID:    rec.ClientID,
				ClientName:  rec.ClientName(),
				TotalAmount: decimal.Zero,
			}
			byClient[rec.ClientID] = cr
			clientOrder = append(clientOrder, rec.ClientID)
		}
		cr.TotalAmount = cr.TotalAmount.Add(rec.Amount)
		cr.InvoiceCount++

		if idx, ok := byMonth[monthLabel(rec.IssueDate)]; ok {
			stats.MonthlyTrends[idx].TotalAmount = stats.MonthlyTrends[idx].TotalAmount.Add(rec.Amount)
			stats.MonthlyTrends[idx].InvoiceCount++
		}
	}

	stats.AverageAmount = sum.Div(decimal.NewFromInt(int64(stats.TotalInvoices)))

	ranking := make([]ClientRevenue, 0, len(clientOrder))
	for _, id := range clientOrder {
		ranking = append(ranking, *byClient[id])
	}
	// Stable: ties keep aggregation (insertion) order.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalAmount.GreaterThan(ranking[j].TotalAmount)
	})
	if len(ranking) > TopClientCount {
		ranking = ranking[:TopClientCount]
	}
	stats.TopClients = ranking

	return stats
}

// emptyTrends builds the trailing window of TrendMonths zeroed entries,
// oldest first, ending at the month of now.
func emptyTrends(now time.Time) []MonthlyTrend {
	trends := make([]MonthlyTrend, 0, TrendMonths)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := TrendMonths - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		trends = append(trends, MonthlyTrend{
			Month:       monthLabel(m),
			TotalAmount: decimal.Zero,
		})
	}
	return trends
}

func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

// TrendDirection labels the sign of a percentage change.
type TrendDirection string

const (
	TrendUp      TrendDirection = "up"
	TrendDown    TrendDirection = "down"
	TrendNeutral TrendDirection = "neutral"
)

// PercentChange is a non-negative percentage plus its direction.
type PercentChange struct {
	Change    decimal.Decimal `json:"change"`
	Direction TrendDirection  `json:"direction"`
}

// PercentageChange compares current against previous. A rise from zero
// reads as 100% up; zero against zero and equal values are neutral.
func PercentageChange(current, previous decimal.Decimal) PercentChange {
	if previous.IsZero() {
		if current.IsZero() {
			return PercentChange{Change: decimal.Zero, Direction: TrendNeutral}
		}
		return PercentChange{Change: decimal.NewFromInt(100), Direction: TrendUp}
	}
	if current.Equal(previous) {
		return PercentChange{Change: decimal.Zero, Direction: TrendNeutral}
	}
	change := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Abs()
	dir := TrendUp
	if current.LessThan(previous) {
		dir = TrendDown
	}
	return PercentChange{Change: change, Direction: dir}
}
