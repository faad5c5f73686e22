package cronitem

import (
	"slices"
	"strconv"
	"strings"
)

// TimeItem describes the values one cron time field matches.
// It is one of AllValues, SingleValue, MultipleValues or Interval.
type TimeItem interface {
	// String returns the canonical text of the field
	String() string

	isTimeItem()
}

// AllValues matches every value of the field (`*`)
type AllValues struct{}

// SingleValue matches exactly one value (`5`)
type SingleValue uint8

// MultipleValues matches each listed value (`1,2,5`). Order is kept as written.
type MultipleValues []uint8

// Interval matches the closed range Start..End (`1-5`)
type Interval struct {
	Start uint8
	End   uint8
}

func (AllValues) isTimeItem()      {}
func (SingleValue) isTimeItem()    {}
func (MultipleValues) isTimeItem() {}
func (Interval) isTimeItem()       {}

func (AllValues) String() string {
	return "*"
}

func (v SingleValue) String() string {
	return strconv.Itoa(int(v))
}

func (v MultipleValues) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(int(n))
	}
	return strings.Join(parts, ",")
}

func (v Interval) String() string {
	return strconv.Itoa(int(v.Start)) + "-" + strconv.Itoa(int(v.End))
}

// EqualTimeItems reports whether a and b are the same variant with the same values
func EqualTimeItems(a, b TimeItem) bool {
	switch x := a.(type) {
	case AllValues:
		_, ok := b.(AllValues)
		return ok
	case SingleValue:
		y, ok := b.(SingleValue)
		return ok && x == y
	case MultipleValues:
		y, ok := b.(MultipleValues)
		return ok && slices.Equal(x, y)
	case Interval:
		y, ok := b.(Interval)
		return ok && x == y
	default:
		return a == nil && b == nil
	}
}

// CronItem is one parsed crontab line: five time fields and the command to run
type CronItem struct {
	Minute     TimeItem
	Hour       TimeItem
	DayOfMonth TimeItem
	Month      TimeItem
	DayOfWeek  TimeItem
	Command    string
}

// Fields returns the five time fields in crontab order
func (c CronItem) Fields() [fieldCount]TimeItem {
	return [fieldCount]TimeItem{c.Minute, c.Hour, c.DayOfMonth, c.Month, c.DayOfWeek}
}

// Equal reports whether c and other hold the same fields and command
func (c CronItem) Equal(other CronItem) bool {
	if c.Command != other.Command {
		return false
	}
	a, b := c.Fields(), other.Fields()
	for i := range a {
		if !EqualTimeItems(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Schedule renders the five time fields separated by single spaces
func (c CronItem) Schedule() string {
	var sb strings.Builder
	for i, field := range c.Fields() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(render(field))
	}
	return sb.String()
}

// String renders the item in the form accepted by Parse. The command is
// written verbatim.
func (c CronItem) String() string {
	return c.Schedule() + " " + c.Command
}

// Format is shorthand for item.String()
func Format(item CronItem) string {
	return item.String()
}

// render treats a missing field as a wildcard so a zero CronItem still formats
func render(item TimeItem) string {
	if item == nil {
		return AllValues{}.String()
	}
	return item.String()
}
