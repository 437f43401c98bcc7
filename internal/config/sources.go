package config

// File is the parsed .gather sources file. It declares what to collect:
// news categories, cities, and tracked symbols with optional alert bounds.
// Missing sections fall back to the built-in defaults section by section.
type File struct {
	// News configures the news scraper targets.
	News NewsSources `yaml:"news"`

	// Weather configures the forecast targets.
	Weather WeatherSources `yaml:"weather"`

	// Crypto configures the tracked symbols.
	Crypto CryptoSources `yaml:"crypto"`
}

// NewsSources declares where articles come from and how to find them.
type NewsSources struct {
	// BaseURL is the site root, used to resolve relative article links.
	BaseURL string `yaml:"base_url"`

	// Categories are the listing pages visited in order. A news run
	// visits at most Config.MaxCategories of them.
	Categories []Category `yaml:"categories"`

	// TitleSelectors is the ordered CSS selector chain for headline
	// elements on listing pages. The first selector that matches anything
	// wins for that page.
	TitleSelectors []string `yaml:"title_selectors"`

	// ContentSelectors is the ordered CSS selector chain for the article
	// body container. Tried in sequence per article.
	ContentSelectors []string `yaml:"content_selectors"`
}

// Category is one listing page.
type Category struct {
	// Name is the human-readable section name.
	Name string `yaml:"name"`

	// URL is the absolute listing page URL.
	URL string `yaml:"url"`
}

// WeatherSources declares the forecast targets.
type WeatherSources struct {
	// Timezone is requested from the forecast API for all series.
	Timezone string `yaml:"timezone"`

	// Cities are fetched concurrently, one API call each.
	Cities []City `yaml:"cities"`
}

// City is one forecast target.
type City struct {
	// Name is the display name stamped into records.
	Name string `yaml:"name"`

	// Latitude and Longitude select the forecast grid point.
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// CryptoSources declares the tracked symbols.
type CryptoSources struct {
	// Symbols are fetched together in one batched request per round.
	Symbols []Symbol `yaml:"symbols"`
}

// Symbol is one tracked cryptocurrency.
//
// Low and High are pointers so "no bounds configured" is distinguishable
// from a zero bound. A symbol is only classified when both are set.
type Symbol struct {
	// ID is the API identifier ("bitcoin", "ethereum", ...).
	ID string `yaml:"id"`

	// Label is the short symbol stamped into records ("BTC", "ETH", ...).
	Label string `yaml:"label"`

	// Low and High are the alert bounds in USD. Prices strictly below Low
	// raise LOW_ALERT, strictly above High raise HIGH_ALERT.
	Low  *float64 `yaml:"low,omitempty"`
	High *float64 `yaml:"high,omitempty"`
}

// HasBounds reports whether the symbol has a complete alert band.
func (s Symbol) HasBounds() bool {
	return s.Low != nil && s.High != nil
}

// DefaultSources returns the built-in collection targets, mirroring the
// original coursework scripts. Alert bounds are deliberately absent here:
// the literal threshold numbers in the original were demo values tuned to
// trigger alerts, not meaningful defaults, so classification only happens
// when a sources file configures bounds.
func DefaultSources() *File {
	return &File{
		News: NewsSources{
			BaseURL: "https://vnexpress.net",
			Categories: []Category{
				{Name: "Trang chủ", URL: "https://vnexpress.net/"},
				{Name: "Thời sự", URL: "https://vnexpress.net/thoi-su"},
				{Name: "Kinh doanh", URL: "https://vnexpress.net/kinh-doanh"},
				{Name: "Thể thao", URL: "https://vnexpress.net/the-thao"},
				{Name: "Giải trí", URL: "https://vnexpress.net/giai-tri"},
				{Name: "Sức khỏe", URL: "https://vnexpress.net/suc-khoe"},
				{Name: "Đời sống", URL: "https://vnexpress.net/gia-dinh"},
				{Name: "Du lịch", URL: "https://vnexpress.net/du-lich"},
				{Name: "Khoa học", URL: "https://vnexpress.net/khoa-hoc"},
				{Name: "Số hóa", URL: "https://vnexpress.net/so-hoa"},
			},
			TitleSelectors: []string{
				"h3.title-news",
				"h2.title-news",
				"h3.title_news",
				"h2.title_news",
				".item-news h3",
				".item-news h2",
				".title-news",
				"article h3",
				"article h2",
			},
			ContentSelectors: []string{
				".fck_detail",
				".Normal",
				"article .content",
				".content_detail",
			},
		},
		Weather: WeatherSources{
			Timezone: DefaultTimezone,
			Cities: []City{
				{Name: "Hà Nội", Latitude: 21.0285, Longitude: 105.8542},
				{Name: "Hồ Chí Minh", Latitude: 10.8231, Longitude: 106.6297},
				{Name: "Đà Nẵng", Latitude: 16.0471, Longitude: 108.2068},
				{Name: "Quy Nhơn", Latitude: 13.7563, Longitude: 109.2297},
			},
		},
		Crypto: CryptoSources{
			Symbols: []Symbol{
				{ID: "bitcoin", Label: "BTC"},
				{ID: "ethereum", Label: "ETH"},
				{ID: "dogecoin", Label: "DOGE"},
			},
		},
	}
}

// Validate checks the sources for structural problems.
func (f *File) Validate() error {
	for _, sym := range f.Crypto.Symbols {
		if sym.HasBounds() && *sym.Low >= *sym.High {
			return ErrInvalidThresholds
		}
	}
	return nil
}

// merge fills empty sections of f from defaults, section by section.
func (f *File) merge(defaults *File) {
	if f.News.BaseURL == "" {
		f.News.BaseURL = defaults.News.BaseURL
	}
	if len(f.News.Categories) == 0 {
		f.News.Categories = defaults.News.Categories
	}
	if len(f.News.TitleSelectors) == 0 {
		f.News.TitleSelectors = defaults.News.TitleSelectors
	}
	if len(f.News.ContentSelectors) == 0 {
		f.News.ContentSelectors = defaults.News.ContentSelectors
	}
	if f.Weather.Timezone == "" {
		f.Weather.Timezone = defaults.Weather.Timezone
	}
	if len(f.Weather.Cities) == 0 {
		f.Weather.Cities = defaults.Weather.Cities
	}
	if len(f.Crypto.Symbols) == 0 {
		f.Crypto.Symbols = defaults.Crypto.Symbols
	}
}
