package services

import (
	"context"
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "assetledger/internal/errors"
	"assetledger/internal/models"
)

// Dashboard feed sizes.
const (
	dashboardRecentAssets   = 5
	dashboardRecentActivity = 10
)

// aggregationService computes portfolio figures on every call. Sums are
// taken in Go with decimal arithmetic so no precision is lost to the driver.
type aggregationService struct {
	db       *gorm.DB
	activity ActivityRecorder
	currency string
}

// NewAggregationService creates a new AggregationServicer. currency is the
// ISO 4217 code used for the formatted dashboard total.
func NewAggregationService(db *gorm.DB, activity ActivityRecorder, currency string) AggregationServicer {
	return &aggregationService{db: db, activity: activity, currency: currency}
}

type categoryValue struct {
	Category models.AssetCategory
	Value    decimal.Decimal
}

func (s *aggregationService) ownerValues(ctx context.Context, ownerID string) ([]categoryValue, error) {
	var rows []categoryValue
	err := s.db.WithContext(ctx).
		Model(&models.Asset{}).
		Select("category, value").
		Where("user_id = ?", ownerID).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// PortfolioTotal returns the exact sum of the owner's asset values.
func (s *aggregationService) PortfolioTotal(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	rows, err := s.ownerValues(ctx, ownerID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Value)
	}
	return total, nil
}

// BreakdownByCategory sums values per category. Categories without assets
// are absent from the result.
func (s *aggregationService) BreakdownByCategory(ctx context.Context, ownerID string) (map[models.AssetCategory]decimal.Decimal, error) {
	summaries, err := s.CategorySummaries(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	breakdown := make(map[models.AssetCategory]decimal.Decimal, len(summaries))
	for _, cs := range summaries {
		breakdown[cs.Category] = cs.Total
	}
	return breakdown, nil
}

// CategorySummaries returns total and count per present category, largest
// total first.
func (s *aggregationService) CategorySummaries(ctx context.Context, ownerID string) ([]CategorySummary, error) {
	rows, err := s.ownerValues(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return summarize(rows), nil
}

func summarize(rows []categoryValue) []CategorySummary {
	byCategory := map[models.AssetCategory]*CategorySummary{}
	for _, r := range rows {
		cs, ok := byCategory[r.Category]
		if !ok {
			cs = &CategorySummary{
				Category: r.Category,
				Label:    r.Category.Label(),
				Color:    r.Category.Color(),
				Total:    decimal.Zero,
			}
			byCategory[r.Category] = cs
		}
		cs.Total = cs.Total.Add(r.Value)
		cs.Count++
	}

	summaries := make([]CategorySummary, 0, len(byCategory))
	for _, cs := range byCategory {
		summaries = append(summaries, *cs)
	}
	sortSummaries(summaries)
	return summaries
}

// sortSummaries orders by total descending, ties by category name.
func sortSummaries(summaries []CategorySummary) {
	sort.Slice(summaries, func(i, j int) bool {
		if c := summaries[i].Total.Cmp(summaries[j].Total); c != 0 {
			return c > 0
		}
		return summaries[i].Category < summaries[j].Category
	})
}

func chartFrom(summaries []CategorySummary) ChartData {
	chart := ChartData{
		Labels:    make([]string, 0, len(summaries)),
		Values:    make([]decimal.Decimal, 0, len(summaries)),
		Colors:    make([]string, 0, len(summaries)),
		Breakdown: make(map[models.AssetCategory]decimal.Decimal, len(summaries)),
		Total:     decimal.Zero,
	}
	for _, cs := range summaries {
		chart.Labels = append(chart.Labels, cs.Label)
		chart.Values = append(chart.Values, cs.Total)
		chart.Colors = append(chart.Colors, cs.Color)
		chart.Breakdown[cs.Category] = cs.Total
		chart.Total = chart.Total.Add(cs.Total)
	}
	return chart
}

// ChartData returns the per-category breakdown and the portfolio total,
// together with the display series for the portfolio chart.
func (s *aggregationService) ChartData(ctx context.Context, ownerID string) (*ChartData, error) {
	breakdown, err := s.BreakdownByCategory(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	total, err := s.PortfolioTotal(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]CategorySummary, 0, len(breakdown))
	for category, value := range breakdown {
		summaries = append(summaries, CategorySummary{
			Category: category,
			Label:    category.Label(),
			Color:    category.Color(),
			Total:    value,
		})
	}
	sortSummaries(summaries)

	chart := chartFrom(summaries)
	chart.Total = total
	return &chart, nil
}

// Dashboard assembles the home page overview.
func (s *aggregationService) Dashboard(ctx context.Context, ownerID string) (*Dashboard, error) {
	rows, err := s.ownerValues(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	summaries := summarize(rows)
	chart := chartFrom(summaries)

	counts := make(map[models.AssetCategory]int64, len(models.AssetCategories))
	for _, c := range models.AssetCategories {
		counts[c] = 0
	}
	for _, cs := range summaries {
		counts[cs.Category] = cs.Count
	}

	var recent []models.Asset
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Limit(dashboardRecentAssets).
		Find(&recent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	activity, err := s.activity.RecentActivity(ctx, ownerID, dashboardRecentActivity)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalValue:     chart.Total,
		FormattedTotal: formatMoney(chart.Total, s.currency),
		AssetCount:     int64(len(rows)),
		Categories:     summaries,
		CategoryCounts: counts,
		Chart:          chart,
		RecentAssets:   recent,
		RecentActivity: activity,
	}, nil
}

// formatMoney renders amount with the currency's symbol and grouping. An
// unknown currency falls back to the plain decimal.
func formatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}
