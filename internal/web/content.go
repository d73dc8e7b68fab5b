package web

// Section is an anchor in the page navigation.
type Section struct {
	ID    string
	Label string
}

// Feature is a short highlight card.
type Feature struct {
	Icon  string
	Title string
	Text  string
}

// Promo is a promotion card.
type Promo struct {
	Badge string
	Title string
	Text  string
}

// Contacts holds the business contact details.
type Contacts struct {
	Phone     string
	PhoneHref string
	Address   string
	Hours     string
	City      string
}

// Content is the static copy of the landing page.
type Content struct {
	Brand         string
	Tagline       string
	Lead          string
	Sections      []Section
	About         []Feature
	Promos        []Promo
	Delivery      []Feature
	DeliveryTerms []string
	Contacts      Contacts
	Year          int
}

// DefaultContent is the copy used by the production page.
func DefaultContent() Content {
	return Content{
		Brand:   "ZharPizza",
		Tagline: "The hottest pizza in Kurganinsk!",
		Lead:    "Real Italian taste with home-made warmth. Delivered hot in 30 minutes!",
		Sections: []Section{
			{ID: "home", Label: "Home"},
			{ID: "menu", Label: "Menu"},
			{ID: "about", Label: "About"},
			{ID: "promo", Label: "Deals"},
			{ID: "delivery", Label: "Delivery"},
			{ID: "contacts", Label: "Contacts"},
		},
		About: []Feature{
			{Icon: "👨‍🍳", Title: "Experienced chefs", Text: "15 years of making real Italian pizza"},
			{Icon: "🌾", Title: "Fresh produce", Text: "Daily deliveries of fresh ingredients from trusted suppliers"},
			{Icon: "❤️", Title: "Made with love", Text: "Every pizza is made as if for our own family"},
		},
		Promos: []Promo{
			{Badge: "Hot deal!", Title: "2 pizzas = 20% off", Text: "Order any two pizzas and get 20% off the whole order"},
			{Badge: "New!", Title: "Free delivery", Text: "Free delivery across town on orders from 1500 rubles!"},
		},
		Delivery: []Feature{
			{Icon: "⏱", Title: "Fast", Text: "Your pizza arrives hot in 30-40 minutes anywhere in Kurganinsk"},
			{Icon: "📍", Title: "Everywhere", Text: "We deliver across the whole town and nearby districts"},
		},
		DeliveryTerms: []string{
			"Minimum order: 500 rubles",
			"Delivery: 150 rubles",
			"Free delivery from 1500 rubles",
			"Open 10:00 - 23:00 every day",
		},
		Contacts: Contacts{
			Phone:     "+7 (861) 234-56-78",
			PhoneHref: "tel:+78612345678",
			Address:   "Kurganinsk, Lenina st. 123",
			Hours:     "Every day 10:00 - 23:00",
			City:      "Kurganinsk",
		},
		Year: 2024,
	}
}
