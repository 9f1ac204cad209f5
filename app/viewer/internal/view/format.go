package view

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ScoreBand 信用分档位，仅用于展示
type ScoreBand string

const (
	BandGood ScoreBand = "good"
	BandFair ScoreBand = "fair"
	BandPoor ScoreBand = "poor"
)

// BandFor 750 及以上为 good，650-749 为 fair，其余为 poor
func BandFor(score int) ScoreBand {
	switch {
	case score >= 750:
		return BandGood
	case score >= 650:
		return BandFair
	default:
		return BandPoor
	}
}

// OverdueSeverity 逾期金额严重程度
type OverdueSeverity string

const (
	SeverityClear  OverdueSeverity = "clear"
	SeverityMild   OverdueSeverity = "mild"
	SeveritySevere OverdueSeverity = "severe"
)

var severeOverdue = decimal.NewFromInt(10000)

// SeverityFor 0 为 clear，(0, 10000) 为 mild，10000 及以上为 severe
func SeverityFor(amount decimal.Decimal) OverdueSeverity {
	switch {
	case amount.Sign() <= 0:
		return SeverityClear
	case amount.LessThan(severeOverdue):
		return SeverityMild
	default:
		return SeveritySevere
	}
}

// EnquiriesElevated 近 7 天征信查询超过 2 次时告警
func EnquiriesElevated(n int) bool {
	return n > 2
}

// 各地区的短日期格式
var shortDateLayouts = map[string]string{
	"en":    "1/2/2006",
	"en-US": "1/2/2006",
	"en-GB": "02/01/2006",
	"en-IN": "2/1/2006",
	"de":    "2.1.2006",
	"fr":    "02/01/2006",
	"ja":    "2006/01/02",
	"zh":    "2006/1/2",
}

const fallbackDateLayout = "2006-01-02"

var (
	maxExactInt = decimal.NewFromInt(math.MaxInt64)
	// 保留两位小数时 float64 仍能精确表示的上限
	maxExactFraction = decimal.New(1, 13)
)

// Formatter 按地区格式化金额与日期
type Formatter struct {
	printer    *message.Printer
	symbol     string
	dateLayout string
	loc        *time.Location
	groupSep   string
	decimalSep string
}

// NewFormatter 创建格式化器，无法识别的地区回退到 en-US
func NewFormatter(locale, symbol string, loc *time.Location) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	if loc == nil {
		loc = time.Local
	}
	p := message.NewPrinter(tag)
	return &Formatter{
		printer:    p,
		symbol:     symbol,
		dateLayout: layoutFor(tag),
		loc:        loc,
		groupSep:   separator(p.Sprint(number.Decimal(1000000))),
		decimalSep: separator(p.Sprint(number.Decimal(1.5))),
	}
}

// separator 取格式化结果中第一段非数字字符
func separator(formatted string) string {
	start := strings.IndexFunc(formatted, func(r rune) bool { return !unicode.IsDigit(r) })
	if start < 0 {
		return ""
	}
	rest := formatted[start:]
	if end := strings.IndexFunc(rest, unicode.IsDigit); end >= 0 {
		return rest[:end]
	}
	return rest
}

func layoutFor(tag language.Tag) string {
	if l, ok := shortDateLayouts[tag.String()]; ok {
		return l
	}
	base, _ := tag.Base()
	if l, ok := shortDateLayouts[base.String()]; ok {
		return l
	}
	return fallbackDateLayout
}

// Currency 货币符号加千分位，非整数金额最多保留两位小数
func (f *Formatter) Currency(d decimal.Decimal) string {
	switch {
	case d.IsInteger() && d.Abs().LessThanOrEqual(maxExactInt):
		return f.symbol + f.printer.Sprint(number.Decimal(d.IntPart()))
	case !d.IsInteger() && d.Abs().LessThan(maxExactFraction):
		v := d.Round(2).InexactFloat64()
		return f.symbol + f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
	default:
		return f.symbol + f.group(d.Round(2))
	}
}

// group 超出 int64/float64 精度的金额按千分位手工分组
func (f *Formatter) group(d decimal.Decimal) string {
	s := d.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.groupSep)
		}
		b.WriteRune(c)
	}
	if frac != "" {
		b.WriteString(f.decimalSep)
		b.WriteString(frac)
	}
	return b.String()
}

// Date 短日期
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.loc).Format(f.dateLayout)
}
