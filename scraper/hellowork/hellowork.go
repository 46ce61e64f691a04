package hellowork

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"offer-enrichment/config"
	"offer-enrichment/models"
	"offer-enrichment/utils"
)

const searchURL = "https://www.hellowork.com/fr-fr/emploi/recherche.html?k=&l=&d=all&page="

// extractCards reads every result card of a search page. The title element
// also holds the company line, so only its first line is the title.
const extractCards = `
(function() {
	var text = function(root, sel) {
		var el = root.querySelector(sel);
		return el ? el.innerText.trim() : '';
	};
	var out = [];
	var cards = document.querySelectorAll("div[data-cy='serpCard']");
	for (var i = 0; i < cards.length; i++) {
		var card = cards[i];
		var titleEl = card.querySelector("[data-cy='offerTitle']");
		if (!titleEl) continue;
		var link = card.querySelector('a[href]');
		out.push({
			titre:      (titleEl.innerText || '').split('\n')[0].trim(),
			entreprise: text(card, "[data-cy='offerTitle'] p.tw-typo-s"),
			ville:      text(card, "[data-cy='localisationCard']"),
			contrat:    text(card, "[data-cy='contractCard']"),
			date:       text(card, "div.tw-typo-s.tw-text-grey-500"),
			link:       link ? link.href : ''
		});
	}
	return out;
})()
`

// card is one search result as extracted in the browser.
type card struct {
	Titre      string `json:"titre"`
	Entreprise string `json:"entreprise"`
	Ville      string `json:"ville"`
	Contrat    string `json:"contrat"`
	Date       string `json:"date"`
	Link       string `json:"link"`
}

func (c card) empty() bool {
	return c.Titre == "" && c.Entreprise == "" && c.Ville == "" && c.Contrat == "" && c.Date == ""
}

// Scraper collects raw offers from the HelloWork search listing.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	pool    *utils.WorkerPool
	visited *utils.URLSet
	retry   *utils.RetryConfig
}

// New creates a ready-to-use HelloWork Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visited: utils.NewURLSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// PageURL returns the search URL of a 1-based result page.
func PageURL(page int) string {
	return searchURL + strconv.Itoa(page)
}

// Scrape fetches PagesToScrape result pages concurrently and returns their
// offers in page order. A failed page is logged and skipped; the scrape
// only fails when every page does.
func (s *Scraper) Scrape(ctx context.Context) ([]*models.RawOffer, error) {
	s.logger.Info("[hellowork] Starting scrape, target: %d pages", s.cfg.PagesToScrape)

	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[hellowork] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()
	// Start the browser once so page tabs share it.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("hellowork: start browser: %w", err)
	}

	pages := make([][]card, s.cfg.PagesToScrape)
	errs := make([]error, s.cfg.PagesToScrape)
	for i := range pages {
		page := i + 1
		s.pool.Submit(func() {
			err := s.retry.Do(ctx, fmt.Sprintf("page-%d", page), func() error {
				cards, err := s.scrapePage(browserCtx, page)
				if err != nil {
					return err
				}
				pages[page-1] = cards
				return nil
			})
			if err != nil {
				s.logger.Error("[hellowork] Page %d failed: %v", page, err)
				errs[page-1] = err
				return
			}
			s.logger.Info("[hellowork] Page %d: %d cards", page, len(pages[page-1]))
		})
	}
	s.pool.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed > 0 && failed == len(errs) {
		return nil, fmt.Errorf("hellowork: all %d pages failed: %w", failed, errs[0])
	}

	offers := s.collect(pages)
	s.logger.Info("[hellowork] Scrape complete: %d offers (%d pages failed, %d unique links)",
		len(offers), failed, s.visited.Size())
	return offers, nil
}

func (s *Scraper) scrapePage(browserCtx context.Context, page int) ([]card, error) {
	ctx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
	defer cancelTimeout()

	var cards []card
	err := chromedp.Run(ctx,
		chromedp.Navigate(PageURL(page)),
		chromedp.WaitReady("div[data-cy='serpCard']", chromedp.ByQuery),
		chromedp.Evaluate(extractCards, &cards),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp page scrape: %w", err)
	}
	return cards, nil
}

// collect flattens pages in order, dropping cards with no field at all
// and cards whose offer link was already seen.
func (s *Scraper) collect(pages [][]card) []*models.RawOffer {
	var offers []*models.RawOffer
	for _, cards := range pages {
		for _, c := range cards {
			if c.empty() {
				continue
			}
			if c.Link != "" && !s.visited.Add(c.Link) {
				s.logger.Debug("[hellowork] Skipping duplicate: %s", c.Link)
				continue
			}
			offers = append(offers, &models.RawOffer{
				Titre:      strings.TrimSpace(c.Titre),
				Entreprise: strings.TrimSpace(c.Entreprise),
				Ville:      strings.TrimSpace(c.Ville),
				Contrat:    strings.TrimSpace(c.Contrat),
				Date:       strings.TrimSpace(c.Date),
			})
		}
	}
	return offers
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
