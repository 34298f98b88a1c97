package itinerary

func mapsURL(query string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + query
}

// hokkaidoTrip is the fixed winter schedule. Days are numbered in order.
var hokkaidoTrip = []Day{
	{
		Date:        "2026-01-20",
		Location:    "Sapporo",
		Coordinates: Coordinates{Lat: 43.0618, Lon: 141.3545},
		Hotel:       "JR Inn Sapporo",
		Activities: []Activity{
			{
				Time:        "09:30",
				Title:       "Flight TPE → New Chitose",
				Type:        TypeTransport,
				Description: "Check in 2 hours early, baggage allowance 23kg.",
				VoucherKey:  "flight-tpe-cts",
			},
			{
				Time:        "15:10",
				Title:       "JR Rapid Airport to Sapporo",
				Type:        TypeTransport,
				Description: "Reserved seat on the u-Seat car, about 37 minutes.",
				MapURL:      mapsURL("New+Chitose+Airport+Station"),
				VoucherKey:  "jr-rapid-airport",
			},
			{
				Time:        "16:30",
				Title:       "Check in: JR Inn Sapporo",
				Type:        TypeHotel,
				Description: "Directly connected to Sapporo Station south exit.",
				MapURL:      mapsURL("JR+Inn+Sapporo"),
				VoucherKey:  "hotel-jr-inn-sapporo",
			},
			{
				Time:        "18:30",
				Title:       "Soup curry dinner",
				Type:        TypeFood,
				Description: "Garaku, expect a queue around dinner time.",
				Menu:        []string{"Chicken leg soup curry", "Pork kakuni soup curry", "Lassi"},
				Notes:       "Spice level 3 is already hot.",
				MapURL:      mapsURL("Soup+Curry+Garaku+Sapporo"),
			},
		},
	},
	{
		Date:        "2026-01-21",
		Location:    "Otaru",
		Coordinates: Coordinates{Lat: 43.1907, Lon: 140.9947},
		Hotel:       "JR Inn Sapporo",
		Activities: []Activity{
			{
				Time:        "09:00",
				Title:       "JR Hakodate Line to Otaru",
				Type:        TypeTransport,
				Description: "Sit on the right side for the sea view.",
				VoucherKey:  "jr-otaru-return",
			},
			{
				Time:        "10:00",
				Title:       "Otaru Canal walk",
				Type:        TypeActivity,
				Description: "Snow-covered warehouses along the canal.",
				MapURL:      mapsURL("Otaru+Canal"),
			},
			{
				Time:        "12:00",
				Title:       "Sankaku Market kaisendon",
				Type:        TypeFood,
				Description: "Fresh seafood bowls next to Otaru Station.",
				Menu:        []string{"Uni ikura don", "Grilled hokke", "Crab miso soup"},
				MapURL:      mapsURL("Sankaku+Market+Otaru"),
			},
			{
				Time:        "14:00",
				Title:       "Music box museum and LeTAO",
				Type:        TypeActivity,
				Description: "Sakaimachi street shopping.",
				Notes:       "LeTAO double fromage is sold out by late afternoon.",
			},
		},
	},
	{
		Date:        "2026-01-22",
		Location:    "Asahikawa",
		Coordinates: Coordinates{Lat: 43.7706, Lon: 142.3650},
		Hotel:       "OMO7 Asahikawa",
		Activities: []Activity{
			{
				Time:        "08:30",
				Title:       "Limited express Kamui to Asahikawa",
				Type:        TypeTransport,
				Description: "Reserved seats, 85 minutes.",
				VoucherKey:  "kamui-sapporo-asahikawa",
			},
			{
				Time:        "10:30",
				Title:       "Asahiyama Zoo penguin walk",
				Type:        TypeActivity,
				Description: "Penguin walk at 11:00 and 14:30 in winter.",
				MapURL:      mapsURL("Asahiyama+Zoo"),
			},
			{
				Time:        "13:30",
				Title:       "Asahikawa ramen",
				Type:        TypeFood,
				Description: "Shoyu ramen in double soup.",
				Menu:        []string{"Shoyu ramen", "Gyoza"},
			},
			{
				Time:        "16:00",
				Title:       "Check in: OMO7 Asahikawa",
				Type:        TypeHotel,
				Description: "Sauna on the top floor.",
				MapURL:      mapsURL("OMO7+Asahikawa"),
				VoucherKey:  "hotel-omo7-asahikawa",
			},
		},
	},
	{
		Date:        "2026-01-23",
		Location:    "Biei",
		Coordinates: Coordinates{Lat: 43.5881, Lon: 142.4669},
		Hotel:       "OMO7 Asahikawa",
		Activities: []Activity{
			{
				Time:        "08:00",
				Title:       "Biei winter bus tour",
				Type:        TypeTransport,
				Description: "Meet at Asahikawa Station east exit.",
				VoucherKey:  "bus-tour-biei",
			},
			{
				Time:        "09:30",
				Title:       "Shirogane Blue Pond",
				Type:        TypeActivity,
				Description: "Frozen pond, light-up in the evening.",
				MapURL:      mapsURL("Shirogane+Blue+Pond"),
			},
			{
				Time:        "11:00",
				Title:       "Shirahige Waterfall",
				Type:        TypeActivity,
				Description: "Blue river under the bridge.",
			},
			{
				Time:        "13:00",
				Title:       "Lunch in Biei",
				Type:        TypeFood,
				Description: "Curry udon is the local specialty.",
				Menu:        []string{"Biei curry udon", "Milk soft serve"},
			},
		},
	},
	{
		Date:        "2026-01-24",
		Location:    "Sapporo",
		Coordinates: Coordinates{Lat: 43.0618, Lon: 141.3545},
		Hotel:       "",
		Activities: []Activity{
			{
				Time:        "09:00",
				Title:       "Kamui back to Sapporo",
				Type:        TypeTransport,
				Description: "Leave luggage in coin lockers at Sapporo Station.",
				VoucherKey:  "kamui-asahikawa-sapporo",
			},
			{
				Time:        "11:00",
				Title:       "Nijo Market",
				Type:        TypeFood,
				Description: "Last seafood breakfast.",
				Menu:        []string{"Kaisendon", "Grilled scallops"},
				MapURL:      mapsURL("Nijo+Market+Sapporo"),
			},
			{
				Time:        "14:00",
				Title:       "JR Rapid Airport to New Chitose",
				Type:        TypeTransport,
				Description: "Airport shopping: Royce, Shiroi Koibito.",
				VoucherKey:  "jr-rapid-airport-return",
			},
			{
				Time:        "17:45",
				Title:       "Flight New Chitose → TPE",
				Type:        TypeTransport,
				Description: "Duty free closes 30 minutes before departure.",
				VoucherKey:  "flight-cts-tpe",
			},
		},
	},
}

func defaultTrip() []Day {
	days := make([]Day, len(hokkaidoTrip))
	for i, d := range hokkaidoTrip {
		d = d.clone()
		d.Number = i + 1
		days[i] = d
	}
	return days
}
