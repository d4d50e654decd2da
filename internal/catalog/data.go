package catalog

import (
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/shopspring/decimal"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Categories in display order. "All" matches every product.
var Categories = []string{All, "Accessories", "Apparel", "Electronics", "Home", "Outdoor"}

var seedProducts = []models.Product{
	{ID: "p1", Title: "Minimalist Wristwatch", Brand: "Aurex", MRP: money("199.00"), Price: money("129.00"), Discount: 35, Rating: 4.6, Reviews: 1421, Category: "Accessories", Image: "https://picsum.photos/id/1062/800/600", Delivery: "Free delivery by Tue", Return: "7-day replacement", Description: "A modern timepiece with sapphire glass and leather strap."},
	{ID: "p2", Title: "Noise-canceling Headphones", Brand: "SonicPro", MRP: money("329.00"), Price: money("249.00"), Discount: 24, Rating: 4.8, Reviews: 2875, Category: "Electronics", Image: "https://picsum.photos/id/180/800/600", Delivery: "Free delivery by Mon", Return: "10-day return", Description: "Immersive sound with active noise cancellation and 30h battery."},
	{ID: "p3", Title: "Ergonomic Office Chair", Brand: "ErgoFlex", MRP: money("449.00"), Price: money("349.00"), Discount: 22, Rating: 4.5, Reviews: 964, Category: "Home", Image: "https://picsum.photos/id/83/800/600", Delivery: "No-cost EMI available", Return: "10-day return", Description: "Adjustable lumbar support and breathable mesh back."},
	{ID: "p4", Title: "Performance Running Shoes", Brand: "FleetRun", MRP: money("179.00"), Price: money("119.00"), Discount: 33, Rating: 4.4, Reviews: 2117, Category: "Apparel", Image: "https://picsum.photos/id/21/800/600", Delivery: "Prime • Tomorrow", Return: "7-day return", Description: "Lightweight cushioning for everyday miles and race day."},
	{ID: "p5", Title: "Smart Home Speaker", Brand: "EchoSphere", MRP: money("119.00"), Price: money("89.00"), Discount: 25, Rating: 4.2, Reviews: 3210, Category: "Electronics", Image: "https://picsum.photos/id/1080/800/600", Delivery: "Free delivery by Wed", Return: "10-day return", Description: "Voice-controlled speaker with room-filling sound."},
	{ID: "p6", Title: "Stoneware Mug Set", Brand: "Hearth", MRP: money("59.00"), Price: money("39.00"), Discount: 34, Rating: 4.7, Reviews: 640, Category: "Home", Image: "https://picsum.photos/id/292/800/600", Delivery: "Free delivery by Fri", Return: "7-day return", Description: "Set of 4 hand-glazed mugs, dishwasher safe."},
	{ID: "p7", Title: "Packable Down Jacket", Brand: "NorthPeak", MRP: money("219.00"), Price: money("159.00"), Discount: 27, Rating: 4.5, Reviews: 1750, Category: "Apparel", Image: "https://picsum.photos/id/1011/800/600", Delivery: "Prime • Tomorrow", Return: "7-day return", Description: "Warmth without weight, packs into its own pocket."},
	{ID: "p8", Title: "Stainless Steel Water Bottle", Brand: "TrailMate", MRP: money("39.00"), Price: money("29.00"), Discount: 26, Rating: 4.9, Reviews: 5321, Category: "Outdoor", Image: "https://picsum.photos/id/1060/800/600", Delivery: "Free delivery by Thu", Return: "7-day return", Description: "Insulated bottle keeps drinks cold for 24h, hot for 12h."},
	{ID: "p9", Title: "Laptop Backpack", Brand: "UrbanCarry", MRP: money("129.00"), Price: money("99.00"), Discount: 23, Rating: 4.3, Reviews: 1189, Category: "Accessories", Image: "https://picsum.photos/id/1015/800/600", Delivery: "Free delivery by Tue", Return: "10-day return", Description: "Weather-resistant backpack with 16\" laptop sleeve."},
	{ID: "p10", Title: "4K Action Camera", Brand: "GoActive", MRP: money("259.00"), Price: money("199.00"), Discount: 23, Rating: 4.1, Reviews: 754, Category: "Electronics", Image: "https://picsum.photos/id/250/800/600", Delivery: "Free delivery by Wed", Return: "7-day return", Description: "Stabilized 4K60 video with waterproof housing."},
	{ID: "p11", Title: "Aromatherapy Diffuser", Brand: "CalmMist", MRP: money("59.00"), Price: money("45.00"), Discount: 24, Rating: 4.4, Reviews: 932, Category: "Home", Image: "https://picsum.photos/id/312/800/600", Delivery: "Free delivery by Thu", Return: "7-day return", Description: "Ultrasonic diffuser with ambient light and timer."},
	{ID: "p12", Title: "Trail Hiking Poles", Brand: "AltiGear", MRP: money("89.00"), Price: money("69.00"), Discount: 22, Rating: 4.6, Reviews: 641, Category: "Outdoor", Image: "https://picsum.photos/id/1021/800/600", Delivery: "Free delivery by Tue", Return: "7-day return", Description: "Carbon fiber poles with cork grips, adjustable length."},
	{ID: "p13", Title: "Wireless Mouse", Brand: "ClickPro", MRP: money("39.00"), Price: money("24.00"), Discount: 38, Rating: 4.3, Reviews: 2012, Category: "Electronics", Image: "https://picsum.photos/id/1069/800/600", Delivery: "Free delivery by Thu", Return: "7-day return", Description: "Ergonomic 2.4GHz mouse with silent clicks."},
	{ID: "p14", Title: "Mechanical Keyboard", Brand: "KeySmith", MRP: money("149.00"), Price: money("109.00"), Discount: 27, Rating: 4.6, Reviews: 1344, Category: "Electronics", Image: "https://picsum.photos/id/191/800/600", Delivery: "Free delivery by Fri", Return: "10-day return", Description: "Hot-swappable switches with RGB backlight."},
	{ID: "p15", Title: "Leather Belt", Brand: "Form&Fit", MRP: money("49.00"), Price: money("29.00"), Discount: 41, Rating: 4.2, Reviews: 603, Category: "Accessories", Image: "https://picsum.photos/id/28/800/600", Delivery: "Free delivery by Wed", Return: "7-day return", Description: "Full-grain leather belt with brushed buckle."},
	{ID: "p16", Title: "Sunglasses Polarized", Brand: "SunGuard", MRP: money("99.00"), Price: money("69.00"), Discount: 30, Rating: 4.5, Reviews: 911, Category: "Accessories", Image: "https://picsum.photos/id/237/800/600", Delivery: "Free delivery by Mon", Return: "7-day return", Description: "UV400 protection with polarized lenses."},
	{ID: "p17", Title: "Crew Neck T-Shirt", Brand: "CottonCo", MRP: money("29.00"), Price: money("19.00"), Discount: 34, Rating: 4.4, Reviews: 2201, Category: "Apparel", Image: "https://picsum.photos/id/365/800/600", Delivery: "Prime • Tomorrow", Return: "7-day return", Description: "100% cotton everyday tee."},
	{ID: "p18", Title: "Slim Fit Jeans", Brand: "DenimLab", MRP: money("69.00"), Price: money("49.00"), Discount: 29, Rating: 4.3, Reviews: 1788, Category: "Apparel", Image: "https://picsum.photos/id/362/800/600", Delivery: "Free delivery by Tue", Return: "7-day return", Description: "Stretch denim with tapered fit."},
	{ID: "p19", Title: "Ceramic Dinner Set", Brand: "HomeSet", MRP: money("129.00"), Price: money("89.00"), Discount: 31, Rating: 4.5, Reviews: 844, Category: "Home", Image: "https://picsum.photos/id/477/800/600", Delivery: "Free delivery by Thu", Return: "10-day return", Description: "Dinner set for 6, microwave safe."},
	{ID: "p20", Title: "Memory Foam Pillow", Brand: "SleepEase", MRP: money("59.00"), Price: money("39.00"), Discount: 34, Rating: 4.6, Reviews: 1570, Category: "Home", Image: "https://picsum.photos/id/484/800/600", Delivery: "Free delivery by Wed", Return: "10-day return", Description: "Cooling gel-infused pillow."},
	{ID: "p21", Title: "Camping Lantern", Brand: "CampFire", MRP: money("49.00"), Price: money("32.00"), Discount: 35, Rating: 4.4, Reviews: 922, Category: "Outdoor", Image: "https://picsum.photos/id/1016/800/600", Delivery: "Free delivery by Fri", Return: "7-day return", Description: "Rechargeable LED lantern, 1000lm."},
	{ID: "p22", Title: "Trekking Backpack 50L", Brand: "SummitPack", MRP: money("159.00"), Price: money("119.00"), Discount: 25, Rating: 4.5, Reviews: 1103, Category: "Outdoor", Image: "https://picsum.photos/id/1018/800/600", Delivery: "Free delivery by Wed", Return: "7-day return", Description: "Supportive frame with rain cover."},
	{ID: "p23", Title: "Smart LED Bulb", Brand: "Lumo", MRP: money("19.00"), Price: money("12.00"), Discount: 37, Rating: 4.1, Reviews: 2987, Category: "Electronics", Image: "https://picsum.photos/id/82/800/600", Delivery: "Free delivery by Tue", Return: "7-day return", Description: "Wi‑Fi bulb supports Alexa/Google."},
	{ID: "p24", Title: "Stainless Cutlery Set", Brand: "ChefHaus", MRP: money("79.00"), Price: money("54.00"), Discount: 32, Rating: 4.3, Reviews: 465, Category: "Home", Image: "https://picsum.photos/id/433/800/600", Delivery: "Free delivery by Thu", Return: "10-day return", Description: "24‑piece set, dishwasher safe."},
	{ID: "p25", Title: "Sports Socks (Pack of 3)", Brand: "Stride", MRP: money("19.00"), Price: money("12.00"), Discount: 37, Rating: 4.2, Reviews: 1043, Category: "Apparel", Image: "https://picsum.photos/id/365/800/600", Delivery: "Prime • Tomorrow", Return: "7-day return", Description: "Cushioned arch support."},
}
