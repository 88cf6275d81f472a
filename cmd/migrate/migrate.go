package main

import (
	"log"

	"maritime-threats-backend/pkg/bootstrap"
	"maritime-threats-backend/pkg/model"
)

func main() {
	env, err := bootstrap.NewEnv()
	if err != nil {
		log.Fatal(err)
	}
	db := bootstrap.NewDB(env)
	err = db.AutoMigrate(
		&model.Threat{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
