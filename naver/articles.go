package naver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"roomscout/httputil"
)

// Article list filtered server-side to monthly-rent trades in pyeong units.
const articleQuery = "?tradeTypes=B2&spaceType=%ED%8F%89&tab=article"

// Class names from the complex article list markup.
const (
	articleItemClass    = "li.ComplexArticleItem_item__L5o7k"
	articleSummaryClass = "li.ComplexArticleItem_item-summary__oHSwl"
	articlePriceClass   = "span.ComplexArticleItem_price__DFeIb"
)

// Article is one cross-referenced rental offer.
type Article struct {
	AreaPyeong  int
	Deposit     int
	MonthlyRent int
}

// FetchArticlePrice scans a complex's article list for an offer whose floor
// area matches areaPyeong. The first pass takes an exact match only; when
// exact is false and no exact match exists, a second pass accepts an area
// one pyeong off, preferring whichever of the two appears first in listing
// order. Deposit and monthly rent come from one price string and are
// assigned together.
func (c *Client) FetchArticlePrice(ctx context.Context, complexID string, areaPyeong int, exact bool) (*Article, error) {
	pageURL := c.endpoints.ComplexBaseURL + complexPathPrefix + complexID + articleQuery
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", httputil.MobileUA)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch complex %s: %w", complexID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch complex %s: status %d", complexID, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse complex %s: %w", complexID, err)
	}

	article, found := matchArticle(doc, []int{areaPyeong})
	if !found && !exact {
		article, found = matchArticle(doc, []int{areaPyeong - 1, areaPyeong + 1})
	}
	if !found {
		return nil, fmt.Errorf("complex %s: no article within tolerance of %d pyeong", complexID, areaPyeong)
	}
	return article, nil
}

// matchArticle scans articles in listing order and returns the first whose
// parenthesized area figure matches any of the accepted values.
func matchArticle(doc *goquery.Document, accepted []int) (*Article, bool) {
	var article *Article

	doc.Find(articleItemClass).EachWithBreak(func(i int, item *goquery.Selection) bool {
		area, ok := articleArea(item)
		if !ok {
			return true
		}

		matched := false
		for _, want := range accepted {
			if area == want {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}

		deposit, rent, err := parsePrice(item.Find(articlePriceClass).First().Text())
		if err != nil {
			return true
		}

		article = &Article{AreaPyeong: area, Deposit: deposit, MonthlyRent: rent}
		return false
	})

	return article, article != nil
}

// articleArea reads the unit-system floor area from a summary entry shaped
// like "84㎡(32)" — the digits inside the parentheses.
func articleArea(item *goquery.Selection) (area int, ok bool) {
	item.Find(articleSummaryClass).EachWithBreak(func(i int, summary *goquery.Selection) bool {
		text := summary.Text()
		open := strings.Index(text, "(")
		if open < 0 || !strings.Contains(text, ")") {
			return true
		}
		digits := strings.Map(keepDigit, text[open+1:])
		if digits == "" {
			return true
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return true
		}
		area, ok = n, true
		return false
	})
	return area, ok
}

// parsePrice splits "월세 1,000/80" (possibly "... ~ ..." ranged, lower bound
// taken) into deposit and monthly rent.
func parsePrice(s string) (deposit, rent int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("empty price")
	}

	// Drop the 2-rune trade-type prefix ("월세") and any range upper bound.
	runes := []rune(s)
	if len(runes) <= 2 {
		return 0, 0, fmt.Errorf("price %q too short", s)
	}
	s = strings.TrimSpace(string(runes[2:]))
	if idx := strings.Index(s, " ~ "); idx >= 0 {
		s = s[:idx]
	}

	left, right, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, fmt.Errorf("price %q has no deposit/rent separator", s)
	}

	deposit, err = strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(left), ",", ""))
	if err != nil {
		return 0, 0, fmt.Errorf("deposit in %q: %w", s, err)
	}
	rent, err = strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(right), ",", ""))
	if err != nil {
		return 0, 0, fmt.Errorf("rent in %q: %w", s, err)
	}
	return deposit, rent, nil
}

func keepDigit(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}
