// Command seedadmin creates the initial administrator account. It is
// idempotent: if the username already exists nothing is changed.
package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	intconfig "reservas/internal/config"
	"reservas/internal/domain"
	"reservas/internal/repositories"
	"reservas/internal/utils"
)

func main() {
	username := utils.FirstNonEmpty(os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_USERNAME"))
	password := os.Getenv("ADMIN_PASSWORD")

	if username == "" || password == "" {
		log.Fatal("Define ADMIN_EMAIL (o ADMIN_USERNAME) y ADMIN_PASSWORD antes de ejecutar.")
	}

	env := intconfig.LoadEnv()
	intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	repo := repositories.UserRepository{}

	if existing, err := repo.GetByUsername(username); err == nil {
		log.Printf("El usuario ya existe (rol: %s).", existing.Role)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("No se pudo procesar la contraseña: %v", err)
	}

	if _, err := repo.Create(username, string(hash), domain.RoleAdmin); err != nil {
		log.Fatalf("No se pudo crear el administrador: %v", err)
	}

	log.Printf("Usuario admin creado: %s", username)
}
