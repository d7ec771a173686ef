package models

import "github.com/shopspring/decimal"

// TotalAmount returns the sum of every item's estimated amount. A nil budget or
// a budget without items totals exactly zero.
func (b *Budget) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	if b == nil {
		return total
	}
	for i := range b.Items {
		total = total.Add(b.Items[i].EstimatedAmount)
	}
	return total
}

// OptionalAmount returns the sum of estimated amounts over optional items.
func (b *Budget) OptionalAmount() decimal.Decimal {
	total := decimal.Zero
	if b == nil {
		return total
	}
	for i := range b.Items {
		if b.Items[i].IsOptional {
			total = total.Add(b.Items[i].EstimatedAmount)
		}
	}
	return total
}

// RequiredAmount returns the sum of estimated amounts over non-optional items.
// TotalAmount == OptionalAmount + RequiredAmount.
func (b *Budget) RequiredAmount() decimal.Decimal {
	total := decimal.Zero
	if b == nil {
		return total
	}
	for i := range b.Items {
		if !b.Items[i].IsOptional {
			total = total.Add(b.Items[i].EstimatedAmount)
		}
	}
	return total
}

// TotalAcrossBudgets sums TotalAmount over budgets. An empty slice totals zero.
func TotalAcrossBudgets(budgets []Budget) decimal.Decimal {
	total := decimal.Zero
	for i := range budgets {
		total = total.Add(budgets[i].TotalAmount())
	}
	return total
}

// OptionalAcrossBudgets sums OptionalAmount over budgets.
func OptionalAcrossBudgets(budgets []Budget) decimal.Decimal {
	total := decimal.Zero
	for i := range budgets {
		total = total.Add(budgets[i].OptionalAmount())
	}
	return total
}
