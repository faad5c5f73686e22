package cronitem

import (
	"strconv"
)

const fieldCount = 5

// ParserError is returned for every input Parse rejects. It carries no
// position or cause; callers that need more context wrap it.
type ParserError struct {
	Message string
}

func (e ParserError) Error() string {
	return e.Message
}

var errParse = ParserError{Message: "couldn't parse cron item"}

// Parse reads a crontab line: minute, hour, day of month, month and day of
// week, each followed by spaces or tabs, then the command. The command is
// everything left up to the end of input, taken verbatim.
func Parse(input string) (CronItem, error) {
	s := &scanner{input: input}

	var fields [fieldCount]TimeItem
	for i := range fields {
		item, ok := s.timeItem()
		if !ok {
			return CronItem{}, errParse
		}
		fields[i] = item
	}

	return CronItem{
		Minute:     fields[0],
		Hour:       fields[1],
		DayOfMonth: fields[2],
		Month:      fields[3],
		DayOfWeek:  fields[4],
		Command:    s.rest(),
	}, nil
}

// ParseTimeItem reads a single time field. The field must be followed by at
// least one space or tab and nothing else.
func ParseTimeItem(input string) (TimeItem, error) {
	s := &scanner{input: input}
	item, ok := s.timeItem()
	if !ok || !s.done() {
		return nil, errParse
	}
	return item, nil
}

// scanner walks the input one alternative at a time. Alternatives that fail
// are rewound by timeItem; a field that matched is never revisited.
type scanner struct {
	input string
	pos   int
}

// Order matters: a list parser would also accept "5" and the "1" of "1-5".
var timeItemAlternatives = [...]func(*scanner) (TimeItem, bool){
	(*scanner).interval,
	(*scanner).single,
	(*scanner).wildcard,
	(*scanner).multiple,
}

func (s *scanner) timeItem() (TimeItem, bool) {
	for _, alternative := range timeItemAlternatives {
		start := s.pos
		if item, ok := alternative(s); ok {
			return item, true
		}
		s.pos = start
	}
	return nil, false
}

func (s *scanner) interval() (TimeItem, bool) {
	start, ok := s.number()
	if !ok || !s.literal('-') {
		return nil, false
	}
	end, ok := s.number()
	if !ok || !s.separator() {
		return nil, false
	}
	return Interval{Start: start, End: end}, true
}

func (s *scanner) single() (TimeItem, bool) {
	n, ok := s.number()
	if !ok || !s.separator() {
		return nil, false
	}
	return SingleValue(n), true
}

func (s *scanner) wildcard() (TimeItem, bool) {
	if !s.literal('*') || !s.separator() {
		return nil, false
	}
	return AllValues{}, true
}

func (s *scanner) multiple() (TimeItem, bool) {
	var values MultipleValues
	for {
		n, ok := s.number()
		if !ok {
			return nil, false
		}
		values = append(values, n)
		if !s.literal(',') {
			break
		}
	}
	if !s.separator() {
		return nil, false
	}
	return values, true
}

// number consumes a run of ASCII digits that fits in a uint8
func (s *scanner) number() (uint8, bool) {
	start := s.pos
	for s.pos < len(s.input) && isDigit(s.input[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return 0, false
	}
	n, err := strconv.ParseUint(s.input[start:s.pos], 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(n), true
}

// separator consumes one or more spaces or tabs
func (s *scanner) separator() bool {
	start := s.pos
	for s.pos < len(s.input) && isSeparator(s.input[s.pos]) {
		s.pos++
	}
	return s.pos > start
}

func (s *scanner) literal(c byte) bool {
	if s.pos < len(s.input) && s.input[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) rest() string {
	return s.input[s.pos:]
}

func (s *scanner) done() bool {
	return s.pos == len(s.input)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSeparator(c byte) bool {
	return c == ' ' || c == '\t'
}
