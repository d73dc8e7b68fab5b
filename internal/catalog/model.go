package catalog

import "context"

// Product is a menu item shown on the landing page. Price is in whole rubles.
type Product struct {
    ID          int    `json:"id"`
    Name        string `json:"name"`
    Description string `json:"description"`
    Price       int    `json:"price"`
    Image       string `json:"image"`
}

// Repository lists menu items in display order.
type Repository interface {
    List(ctx context.Context) ([]Product, error)
}

const imageBase = "https://cdn.poehali.dev/projects/72d0d0a7-e3f0-40fc-9227-ac83d2d62238/files/"

// DefaultMenu is the menu served when no database is configured.
var DefaultMenu = []Product{
    {
        ID:          1,
        Name:        "Pepperoni",
        Description: "The classic: spicy pepperoni, mozzarella and tomato sauce",
        Price:       599,
        Image:       imageBase + "7769edb4-95d6-414f-85e6-e36afdc2e1ad.jpg",
    },
    {
        ID:          2,
        Name:        "Caesar",
        Description: "Tender chicken, parmesan, iceberg lettuce and our own caesar dressing",
        Price:       649,
        Image:       imageBase + "9b24e157-4407-45bf-91e7-aa3b4f1ee096.jpg",
    },
    {
        ID:          3,
        Name:        "Tropical",
        Description: "Pineapple, ham and mozzarella on a tomato base",
        Price:       579,
        Image:       imageBase + "c98cc4c6-d153-49f3-8854-fed33d262e7a.jpg",
    },
}
