package trend

import (
	"fmt"
	"strings"

	"github.com/spacesedan/trendscope/internal/models"
)

type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleChinese Locale = "zh"
)

func ParseLocale(s string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "en":
		return LocaleEnglish, nil
	case "zh", "zh-tw", "zh_tw":
		return LocaleChinese, nil
	default:
		return LocaleEnglish, fmt.Errorf("[Trend] unsupported locale %q", s)
	}
}

type phrasebook struct {
	insufficient string
	base         string
	improving    string
	worsening    string
	unclear      string
	keywords     string
	separator    string
	labels       map[models.Label]string
}

var phrasebooks = map[Locale]phrasebook{
	LocaleEnglish: {
		insufficient: "insufficient articles",
		base:         "Based on %d articles, overall sentiment is %s",
		improving:    ", and sentiment continues to improve",
		worsening:    ", and sentiment continues to worsen",
		unclear:      ", but the trend is unclear",
		keywords:     "; keywords include: ",
		separator:    ", ",
		labels: map[models.Label]string{
			models.LabelPositive: "positive",
			models.LabelNegative: "negative",
			models.LabelNeutral:  "neutral",
		},
	},
	LocaleChinese: {
		insufficient: "新聞數量不足，無法預測趨勢",
		base:         "基於%d條新聞分析，整體情感為%s",
		improving:    "，且情感持續向好",
		worsening:    "，且情感持續惡化",
		unclear:      "，但趨勢不明顯",
		keywords:     "，關鍵詞包括: ",
		separator:    ", ",
		labels: map[models.Label]string{
			models.LabelPositive: "積極",
			models.LabelNegative: "消極",
			models.LabelNeutral:  "中性",
		},
	},
}

func phrasesFor(l Locale) phrasebook {
	if pb, ok := phrasebooks[l]; ok {
		return pb
	}
	return phrasebooks[LocaleEnglish]
}

func (pb phrasebook) label(l models.Label) string {
	if s, ok := pb.labels[l]; ok {
		return s
	}
	return string(l)
}

func (pb phrasebook) reason(trend models.Trend, count int, overall models.Label, keywords []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, pb.base, count, pb.label(overall))

	switch trend {
	case models.TrendBullish:
		b.WriteString(pb.improving)
	case models.TrendBearish:
		b.WriteString(pb.worsening)
	default:
		b.WriteString(pb.unclear)
	}

	if len(keywords) > 0 {
		b.WriteString(pb.keywords)
		b.WriteString(strings.Join(keywords, pb.separator))
	}
	return b.String()
}
