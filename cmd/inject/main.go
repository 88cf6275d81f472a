package main

import (
	"fmt"
	"math/rand"
	"time"

	"maritime-threats-backend/pkg/bootstrap"
	"maritime-threats-backend/pkg/model"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

var (
	regions = []string{
		"Red Sea", "Persian Gulf", "South China Sea",
		"Gulf of Guinea", "Strait of Malacca", "Black Sea",
	}
	categories = []string{
		"Piracy", "Military Conflict", "Sanctions",
		"Port Disruption", "Chokepoint Closure",
	}
	countries = []string{
		"Yemen", "Iran", "China", "Nigeria", "Ukraine",
		"Egypt", "Singapore", "Somalia",
	}
)

func randRange(min, max int) int {
	if min >= max {
		return min
	}
	return rand.Intn(max-min) + min
}

func shuffle(arr []string) []string {
	result := make([]string, len(arr))
	copy(result, arr)
	for i := range result {
		j := rand.Intn(i + 1)
		result[i], result[j] = result[j], result[i]
	}
	return result
}

func NewMockThreat() *model.Threat {
	countrySelection := shuffle(countries)[:randRange(1, 3)]

	return &model.Threat{
		ID:              uuid.New().String(),
		Title:           faker.Sentence(),
		Region:          regions[rand.Intn(len(regions))],
		Countries:       countrySelection,
		Category:        categories[rand.Intn(len(categories))],
		Description:     faker.Paragraph(),
		PotentialImpact: faker.Sentence(),
		SourceURLs:      []string{faker.URL()},
		DateMentioned:   time.Now().AddDate(0, 0, -rand.Intn(14)).Format("January 2, 2006"),
	}
}

func main() {
	// Init config
	app := bootstrap.App()

	// Create mock data
	batchNum := 500
	data := make([]*model.Threat, batchNum)
	for i := 0; i < batchNum; i++ {
		data[i] = NewMockThreat()
		data[i].Version = i + 1
	}

	// jump out a prompt to confirm
	fmt.Println("Are you sure to inject mock data? (y/n)")
	var input string
	fmt.Scanln(&input)
	if input != "y" {
		return
	}
	app.Conn.Exec("TRUNCATE TABLE threats")
	app.Conn.Model(&model.Threat{}).Create(&data)
}
