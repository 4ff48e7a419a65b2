// file: main.go
package main

import (
	"log"
	"os"

	"github.com/Bellic12/RabbitCTF/database"
	"github.com/Bellic12/RabbitCTF/routes"
	"github.com/joho/godotenv"
)

func main() {
	// .env 不存在时静默跳过，生产环境直接用进程环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	database.Connect()
	database.MigrateTables()
	database.InitRedis()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Starting server on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
