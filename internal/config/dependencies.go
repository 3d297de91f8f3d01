package config

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"

	"todo-calendar/internal/auth"
	"todo-calendar/internal/repository"
	"todo-calendar/internal/websocket"
)

var (
	// Global dependency yang akan digunakan di seluruh aplikasi
	Users       repository.UserRepository
	Tasks       repository.TaskRepository
	Tokens      *auth.TokenService
	Validate    = newValidator()
	RedisClient *redis.Client
	Hub         *websocket.Hub
	BcryptCost  = bcrypt.DefaultCost
)

var usernamePattern = regexp.MustCompile(`^[\w.@+\-]+$`)

// newValidator memakai nama field dari tag json dan menambah tag
// "notblank" dan "username".
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}
