package main

import (
	"log"
	"os"

	"github.com/gestor-certificados/api/internal/infrastructure/database"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	path := os.Getenv("MIGRATIONS_PATH")
	if path == "" {
		path = "migrations"
	}

	if err := database.RunMigrations(path); err != nil {
		log.Fatalf("Erro ao aplicar migrações: %v", err)
	}
	log.Println("Migrações aplicadas com sucesso")
}
