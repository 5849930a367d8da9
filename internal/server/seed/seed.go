// Package seed holds the sample content the in-memory stores start with, so
// the dashboard has something to show when no database is reachable.
package seed

import (
	"time"

	"github.com/dmitrijs2005/travelboard/internal/server/models"
)

// AuthorID owns every sample record. It is the roster administrator.
const AuthorID = "admin-001"

// Set is one full batch of sample content.
type Set struct {
	Experiences []*models.Experience
	Itineraries []*models.Itinerary
	Images      []*models.Image
	Updates     []*models.Update
}

func str(s string) *string { return &s }

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + "?w=800&h=600&fit=crop&q=80"
}

// Sample builds the sample set. Records are stamped one minute apart
// going back from now, so the first record of each kind lists first.
func Sample(now time.Time) Set {
	at := func(i int) time.Time { return now.Add(-time.Duration(i) * time.Minute).UTC() }

	kerala := unsplash("photo-1602216056096-3b40cc0c9944")
	rajasthan := unsplash("photo-1524492412937-b28074a5d7da")
	goa := unsplash("photo-1512343879784-a960bf40e7f2")
	himachal := unsplash("photo-1506905925346-21bda4d32df4")
	tamil := unsplash("photo-1578474846511-04ba529f0b88")

	s := Set{
		Experiences: []*models.Experience{
			{
				ID: "exp-001", Destination: "Kerala", Region: "South",
				Title:       "Kerala Backwater Paradise",
				Description: "Experience the serene beauty of Kerala backwaters with traditional houseboats, lush green landscapes, and authentic local culture.",
				Highlights: []string{
					"Traditional houseboat cruise through backwaters",
					"Authentic Kerala cuisine and spice plantation tours",
					"Ayurvedic spa treatments and wellness therapies",
					"Coconut plantation visits and toddy tapping experience",
					"Kathakali dance performances and cultural shows",
				},
				ImageURL: str(kerala),
			},
			{
				ID: "exp-002", Destination: "Rajasthan", Region: "North",
				Title:       "Royal Palaces of Rajasthan",
				Description: "Discover the grandeur of Rajasthani royalty with magnificent palaces, historic forts, and vibrant desert culture.",
				Highlights: []string{
					"City Palace Udaipur with stunning lake views",
					"Amber Fort Jaipur - architectural marvel",
					"Mehrangarh Fort Jodhpur - blue city panorama",
					"Camel safari in Thar Desert with camping",
					"Traditional Rajasthani folk music and dance",
				},
				ImageURL: str(rajasthan),
			},
			{
				ID: "exp-003", Destination: "Goa", Region: "West",
				Title:       "Goa Beach Paradise",
				Description: "Relax on pristine beaches, explore Portuguese heritage, and enjoy vibrant nightlife in India's beach capital.",
				Highlights: []string{
					"Pristine beaches - Baga, Calangute, Anjuna",
					"Portuguese colonial architecture and churches",
					"Vibrant beach shacks and seafood cuisine",
					"Water sports - parasailing, jet skiing, diving",
					"Spice plantations and traditional Goan culture",
				},
				ImageURL: str(goa),
			},
			{
				ID: "exp-004", Destination: "Himachal Pradesh", Region: "North",
				Title:       "Himalayan Adventure Paradise",
				Description: "Explore snow-capped mountains, adventure sports, and hill stations in the beautiful state of Himachal Pradesh.",
				Highlights: []string{
					"Manali and Rohtang Pass scenic beauty",
					"Adventure activities - trekking, paragliding, river rafting",
					"Dharamshala and McLeod Ganj spiritual journey",
					"Apple orchards and mountain village experiences",
					"Shimla heritage train and colonial architecture",
				},
				ImageURL: str(himachal),
			},
			{
				ID: "exp-005", Destination: "Tamil Nadu", Region: "South",
				Title:       "Temple Trail & Cultural Heritage",
				Description: "Journey through ancient temples, classical arts, and rich cultural heritage of Tamil Nadu.",
				Highlights: []string{
					"Magnificent temples of Madurai and Thanjavur",
					"Classical Bharatanatyam dance performances",
					"French colonial architecture in Pondicherry",
					"Hill station retreat in Ooty and Kodaikanal",
					"Traditional silk weaving and handicraft centers",
				},
				ImageURL: str(tamil),
			},
		},
		Itineraries: []*models.Itinerary{
			{
				ID: "itn-001", Destination: "Kerala", Region: "South",
				Title: "7-Day Kerala Backwater & Hill Station Tour", Duration: "7 days",
				ImageURL: str(unsplash("photo-1578662996442-48f60103fc96")),
				Days: []models.ItineraryDay{
					{DayNumber: 1, Activities: []string{"Arrival in Kochi - Fort Kochi exploration", "Chinese fishing nets and spice markets", "Evening Kathakali performance"}},
					{DayNumber: 2, Activities: []string{"Drive to Munnar (4 hours)", "Tea plantation visit and factory tour", "Overnight in hill station resort"}},
					{DayNumber: 3, Activities: []string{"Eravikulam National Park visit", "Mattupetty Dam and Echo Point", "Tea museum and tasting session"}},
					{DayNumber: 4, Activities: []string{"Drive to Thekkady (3 hours)", "Periyar Wildlife Sanctuary boat ride", "Spice plantation tour and Ayurvedic massage"}},
					{DayNumber: 5, Activities: []string{"Drive to Alleppey backwaters (4 hours)", "Houseboat check-in and lunch", "Cruise through narrow canals and villages"}},
					{DayNumber: 6, Activities: []string{"Morning backwater cruise", "Traditional fishing village visit", "Coir-making demonstration and local lunch"}},
					{DayNumber: 7, Activities: []string{"Houseboat check-out", "Drive to Kochi airport (1.5 hours)", "Departure with memories of Gods Own Country"}},
				},
			},
			{
				ID: "itn-002", Destination: "Rajasthan", Region: "North",
				Title: "10-Day Golden Triangle & Desert Safari", Duration: "10 days",
				ImageURL: str(rajasthan),
				Days: []models.ItineraryDay{
					{DayNumber: 1, Activities: []string{"Arrival in Delhi - Red Fort and India Gate", "Chandni Chowk market exploration", "Welcome dinner with cultural show"}},
					{DayNumber: 2, Activities: []string{"Drive to Agra (4 hours)", "Taj Mahal sunset visit", "Agra Fort exploration"}},
					{DayNumber: 3, Activities: []string{"Fatehpur Sikri ghost city visit", "Drive to Jaipur (5 hours)", "Evening at leisure in Pink City"}},
					{DayNumber: 4, Activities: []string{"Amber Fort elephant ride", "City Palace and Jantar Mantar", "Hawa Mahal photo stop"}},
					{DayNumber: 5, Activities: []string{"Drive to Jodhpur (5 hours)", "Mehrangarh Fort sunset visit", "Blue city walking tour"}},
				},
			},
			{
				ID: "itn-003", Destination: "Goa", Region: "West",
				Title: "5-Day Goa Beach & Heritage Tour", Duration: "5 days",
				ImageURL: str(goa),
				Days: []models.ItineraryDay{
					{DayNumber: 1, Activities: []string{"Arrival in Goa - Panaji city tour", "Basilica of Bom Jesus visit", "Sunset at Miramar Beach"}},
					{DayNumber: 2, Activities: []string{"North Goa beaches - Baga and Calangute", "Water sports and beach activities", "Beach shack dinner"}},
					{DayNumber: 3, Activities: []string{"Spice plantation tour", "Traditional Goan lunch", "Anjuna Flea Market shopping"}},
					{DayNumber: 4, Activities: []string{"South Goa beaches - Colva and Benaulim", "Portuguese architecture tour", "Sunset cruise"}},
					{DayNumber: 5, Activities: []string{"Dudhsagar Falls excursion", "Shopping for souvenirs", "Departure transfer"}},
				},
			},
		},
		Images: []*models.Image{
			{ID: "img-001", Destination: "Kerala", Region: "South", URL: kerala, Caption: "Traditional houseboat in Kerala backwaters during golden hour"},
			{ID: "img-002", Destination: "Rajasthan", Region: "North", URL: rajasthan, Caption: "Magnificent Amber Fort overlooking Jaipur city"},
			{ID: "img-003", Destination: "Goa", Region: "West", URL: goa, Caption: "Sunset at pristine Goa beach with palm trees"},
			{ID: "img-004", Destination: "Himachal Pradesh", Region: "North", URL: himachal, Caption: "Breathtaking mountain landscapes of Ladakh with snow peaks"},
			{ID: "img-005", Destination: "Tamil Nadu", Region: "South", URL: tamil, Caption: "Ancient temple architecture showcasing Dravidian style"},
		},
		Updates: []*models.Update{
			{
				ID: "upd-001", Type: models.UpdateTravelTrend, Title: "Sustainable Tourism in Kerala",
				Content: "Kerala leads India's sustainable tourism initiatives with eco-friendly houseboats, organic spice plantations, and community-based tourism programs that benefit local communities while preserving the environment.",
			},
			{
				ID: "upd-002", Type: models.UpdateNewExperience, Title: "New Rajasthan Heritage Hotels",
				Content: "Experience royal luxury in converted palace hotels across Rajasthan. Stay in the same rooms where maharajas once lived, with modern amenities and traditional hospitality.",
			},
			{
				ID: "upd-003", Type: models.UpdateNewsletter, Title: "Monsoon Travel Tips for India",
				Content: "Make the most of monsoon season with our complete guide to traveling in India during the rains. From the best hill stations to cultural festivals, discover why monsoon is magical.",
			},
			{
				ID: "upd-004", Type: models.UpdateTravelTrend, Title: "Himalayan Adventure Tourism Surge",
				Content:     "Adventure tourism in Himachal Pradesh and Uttarakhand is witnessing unprecedented growth with new trekking routes, eco-lodges, and sustainable mountain tourism practices.",
				ExternalURL: str("https://immerseindia.vercel.app/blog/himalayan-adventure"),
			},
		},
	}

	for i, e := range s.Experiences {
		e.AuthorID, e.CreatedAt, e.UpdatedAt = AuthorID, at(i), at(i)
	}
	for i, it := range s.Itineraries {
		it.AuthorID, it.CreatedAt, it.UpdatedAt = AuthorID, at(i), at(i)
	}
	for i, img := range s.Images {
		img.AuthorID, img.CreatedAt, img.UpdatedAt = AuthorID, at(i), at(i)
	}
	for i, u := range s.Updates {
		u.AuthorID, u.CreatedAt, u.UpdatedAt = AuthorID, at(i), at(i)
	}
	return s
}
