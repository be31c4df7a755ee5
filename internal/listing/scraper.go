package listing

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// Details holds what could be extracted from a listing page. Any field may be
// empty; enrichment is best-effort.
type Details struct {
	URL         string
	Title       string
	Price       string
	Description string
}

var pricePattern = regexp.MustCompile(`R\$\s?[\d.,]+`)

// Scraper extracts listing details when the visitor pastes a link instead of
// a plain address.
type Scraper struct {
	logger *logrus.Logger
}

func NewScraper(logger *logrus.Logger) *Scraper {
	return &Scraper{logger: logger}
}

// IsListingURL reports whether the query looks like a link worth scraping.
func IsListingURL(query string) bool {
	trimmed := strings.TrimSpace(query)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return false
	}
	u, err := url.Parse(trimmed)
	return err == nil && u.Host != ""
}

// Fetch visits the listing page and pulls out title, price and description.
func (s *Scraper) Fetch(listingURL string) (*Details, error) {
	details := &Details{URL: listingURL}

	c := colly.NewCollector(
		colly.UserAgent("RadarImovel-Bot/1.0"),
	)
	c.SetRequestTimeout(15 * time.Second)

	c.OnHTML("title", func(e *colly.HTMLElement) {
		if details.Title == "" {
			details.Title = strings.TrimSpace(e.Text)
		}
	})

	c.OnHTML(`meta[property="og:description"]`, func(e *colly.HTMLElement) {
		if details.Description == "" {
			details.Description = strings.TrimSpace(e.Attr("content"))
		}
	})

	c.OnHTML("body", func(e *colly.HTMLElement) {
		if details.Price == "" {
			if match := pricePattern.FindString(e.Text); match != "" {
				details.Price = match
			}
		}
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(listingURL); err != nil {
		return nil, fmt.Errorf("failed to visit listing: %w", err)
	}
	if fetchErr != nil {
		return nil, fmt.Errorf("listing fetch error: %w", fetchErr)
	}
	if details.Title == "" && details.Price == "" && details.Description == "" {
		return nil, fmt.Errorf("no listing details extracted")
	}

	s.logger.WithFields(logrus.Fields{
		"url":   listingURL,
		"title": details.Title,
		"price": details.Price,
	}).Debug("Listing details extracted")

	return details, nil
}
