package budget

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/budgetly/budgetly/pkg/period"
	log "github.com/sirupsen/logrus"
)

type UtilizationRenderer interface {
	RenderUtilization(instances []Instance) (string, error)
}

type CsvUtilizationRendererImpl struct {
}

func NewCsvUtilizationRenderer() *CsvUtilizationRendererImpl {
	return &CsvUtilizationRendererImpl{}
}

var csvHeader = []string{"Budget", "Type", "Category", "Timeframe", "Period start", "Period end", "Amount", "Spent", "Utilization %"}

// RenderUtilization writes one row per instance below a header row. Amounts keep two fractional digits.
func (t *CsvUtilizationRendererImpl) RenderUtilization(instances []Instance) (string, error) {
	data := make([][]string, 0, len(instances)+1)
	data = append(data, csvHeader)
	for _, instance := range instances {
		data = append(data, []string{
			strconv.Itoa(instance.Budget.Id),
			string(instance.Budget.Type),
			string(instance.Budget.Category),
			string(instance.Budget.Timeframe),
			instance.PeriodStart.Format(period.DateLayout),
			instance.PeriodEnd.Format(period.DateLayout),
			instance.Budget.Amount.StringFixed(2),
			instance.Expenditure.StringFixed(2),
			instance.Utilization.StringFixed(4),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.WriteAll(data); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}
