package main

// DemoProduct is a catalog entry served by the demo API
type DemoProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
	MinOrder    int     `json:"minOrder"`
}

// DemoCategory is a catalog category
type DemoCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var categories = []DemoCategory{
	{ID: "all", Name: "Todos os Produtos"},
	{ID: "verduras", Name: "Verduras"},
	{ID: "legumes", Name: "Legumes"},
	{ID: "frutas", Name: "Frutas"},
	{ID: "temperos", Name: "Temperos"},
	{ID: "graos", Name: "Grãos e Cereais"},
}

var products = []DemoProduct{
	{ID: "1", Name: "Alface Americana", Category: "verduras", Price: 4.5, Unit: "unidade", Image: "/fresh-lettuce.png", Description: "Alface americana fresca e crocante", Stock: 150, MinOrder: 5},
	{ID: "2", Name: "Tomate Italiano", Category: "legumes", Price: 6.9, Unit: "kg", Image: "/italian-tomatoes.jpg", Description: "Tomate italiano premium para molhos", Stock: 200, MinOrder: 2},
	{ID: "3", Name: "Cebola Roxa", Category: "legumes", Price: 5.2, Unit: "kg", Image: "/red-onion.jpg", Description: "Cebola roxa de primeira qualidade", Stock: 180, MinOrder: 3},
	{ID: "4", Name: "Rúcula Orgânica", Category: "verduras", Price: 8.5, Unit: "maço", Image: "/organic-arugula.jpg", Description: "Rúcula orgânica certificada", Stock: 80, MinOrder: 3},
	{ID: "5", Name: "Batata Inglesa", Category: "legumes", Price: 4.2, Unit: "kg", Image: "/pile-of-potatoes.png", Description: "Batata inglesa para diversos preparos", Stock: 300, MinOrder: 5},
	{ID: "6", Name: "Cenoura", Category: "legumes", Price: 3.8, Unit: "kg", Image: "/fresh-carrots.png", Description: "Cenoura fresca e doce", Stock: 250, MinOrder: 3},
	{ID: "7", Name: "Manjericão Fresco", Category: "temperos", Price: 6.0, Unit: "maço", Image: "/fresh-basil.png", Description: "Manjericão fresco aromático", Stock: 60, MinOrder: 2},
	{ID: "8", Name: "Limão Tahiti", Category: "frutas", Price: 7.5, Unit: "kg", Image: "/tahiti-lemon.jpg", Description: "Limão tahiti suculento", Stock: 120, MinOrder: 2},
	{ID: "9", Name: "Arroz Integral", Category: "graos", Price: 12.9, Unit: "kg", Image: "/bowl-of-brown-rice.png", Description: "Arroz integral de alta qualidade", Stock: 500, MinOrder: 10},
	{ID: "10", Name: "Feijão Preto", Category: "graos", Price: 8.5, Unit: "kg", Image: "/black-beans-close-up.png", Description: "Feijão preto tipo 1", Stock: 400, MinOrder: 10},
	{ID: "11", Name: "Espinafre", Category: "verduras", Price: 5.5, Unit: "maço", Image: "/fresh-spinach.png", Description: "Espinafre fresco rico em ferro", Stock: 90, MinOrder: 3},
	{ID: "12", Name: "Pimentão Vermelho", Category: "legumes", Price: 9.8, Unit: "kg", Image: "/red-bell-pepper.jpg", Description: "Pimentão vermelho doce", Stock: 100, MinOrder: 2},
}

// filterProducts returns products in the given category; "all" or empty
// returns everything.
func filterProducts(category string) []DemoProduct {
	if category == "" || category == "all" {
		return products
	}
	filtered := make([]DemoProduct, 0)
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// findProduct returns the product with the given id, or nil
func findProduct(id string) *DemoProduct {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}
