package dashboard

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const entryVar = "$$entry"

func overviewPipeline(userID string, filter PeriodFilter) mongo.Pipeline {
	window := periodConds(filter)
	pending := with(window, bson.D{{Key: "$eq", Value: bson.A{entryVar + ".status", string(StatusPending)}}})

	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user", Value: userID}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "totalRevenue", Value: sumAmounts("$revenues", allOf(window))},
			{Key: "totalReceivables", Value: sumAmounts("$receivables", allOf(window))},
			{Key: "pendingReceivables", Value: sumAmounts("$receivables", allOf(pending))},
			{Key: "totalExpenses", Value: sumAmounts("$expenses", allOf(window))},
		}}},
	}
}

func chartsPipeline(userID string, filter RangeFilter, layout chartLayout) mongo.Pipeline {
	window := rangeConds(filter)

	revenuesByMonth := make(bson.A, 0, len(layout.months))
	expensesByMonth := make(bson.A, 0, len(layout.months))
	for i := range layout.months {
		cond := allOf(with(window, monthIs(monthBucket(i))))
		revenuesByMonth = append(revenuesByMonth, sumAmounts("$revenues", cond))
		expensesByMonth = append(expensesByMonth, sumAmounts("$expenses", cond))
	}

	byCategory := make(bson.A, 0, len(layout.categories))
	for _, name := range layout.categories {
		cond := allOf(with(window, bson.D{{Key: "$eq", Value: bson.A{entryVar + ".category", name}}}))
		byCategory = append(byCategory, sumAmounts("$expenses", cond))
	}

	revenuesByDay := make(bson.A, 0, len(layout.days))
	expensesByDay := make(bson.A, 0, len(layout.days))
	for _, label := range layout.days {
		day, _ := strconv.Atoi(label)
		cond := allOf(with(window, dayIs(day)))
		revenuesByDay = append(revenuesByDay, sumAmounts("$revenues", cond))
		expensesByDay = append(expensesByDay, sumAmounts("$expenses", cond))
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user", Value: userID}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "lineChart", Value: bson.D{
				{Key: "labels", Value: literal(layout.months)},
				{Key: "revenues", Value: arrayExpr(revenuesByMonth)},
				{Key: "expenses", Value: arrayExpr(expensesByMonth)},
			}},
			{Key: "doughnutChart", Value: bson.D{
				{Key: "labels", Value: literal(layout.categories)},
				{Key: "data", Value: arrayExpr(byCategory)},
				{Key: "colors", Value: literal(layout.colors)},
			}},
			{Key: "barChart", Value: bson.D{
				{Key: "labels", Value: literal(layout.days)},
				{Key: "revenues", Value: arrayExpr(revenuesByDay)},
				{Key: "expenses", Value: arrayExpr(expensesByDay)},
				{Key: "currentMonth", Value: literal(layout.currentMonth)},
			}},
		}}},
	}
}

// sumAmounts sums the amount of every element of the input array satisfying cond.
// A missing array sums to 0.
func sumAmounts(input string, cond interface{}) bson.D {
	return bson.D{{Key: "$sum", Value: bson.D{{Key: "$map", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$filter", Value: bson.D{
			{Key: "input", Value: input},
			{Key: "as", Value: "entry"},
			{Key: "cond", Value: cond},
		}}}},
		{Key: "as", Value: "entry"},
		{Key: "in", Value: entryVar + ".amount"},
	}}}}}
}

func periodConds(filter PeriodFilter) []interface{} {
	from, to, bounded := filter.Window()
	if !bounded {
		return nil
	}
	return []interface{}{
		bson.D{{Key: "$gte", Value: bson.A{entryVar + ".date", from}}},
		bson.D{{Key: "$lt", Value: bson.A{entryVar + ".date", to}}},
	}
}

func rangeConds(filter RangeFilter) []interface{} {
	var conds []interface{}
	if filter.Start != nil {
		conds = append(conds, bson.D{{Key: "$gte", Value: bson.A{entryVar + ".date", *filter.Start}}})
	}
	if filter.End != nil {
		conds = append(conds, bson.D{{Key: "$lte", Value: bson.A{entryVar + ".date", *filter.End}}})
	}
	return conds
}

func monthIs(month int) bson.D {
	return bson.D{{Key: "$eq", Value: bson.A{bson.D{{Key: "$month", Value: entryVar + ".date"}}, month}}}
}

func dayIs(day int) bson.D {
	return bson.D{{Key: "$eq", Value: bson.A{bson.D{{Key: "$dayOfMonth", Value: entryVar + ".date"}}, day}}}
}

func with(conds []interface{}, extra interface{}) []interface{} {
	out := make([]interface{}, 0, len(conds)+1)
	out = append(out, conds...)
	return append(out, extra)
}

func allOf(conds []interface{}) interface{} {
	switch len(conds) {
	case 0:
		return true
	case 1:
		return conds[0]
	default:
		return bson.D{{Key: "$and", Value: bson.A(conds)}}
	}
}

func literal(v interface{}) bson.D {
	return bson.D{{Key: "$literal", Value: v}}
}

// arrayExpr keeps an empty expression list from being read as a projection document.
func arrayExpr(items bson.A) interface{} {
	if len(items) == 0 {
		return literal(bson.A{})
	}
	return items
}
