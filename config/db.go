package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"frontdesk-backend/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "frontdesk_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

// SeedDatabase is idempotent: every block checks for existing rows first.
func SeedDatabase() {
	// ---------------- Operators ----------------
	var opCount int64
	DB.Model(&models.Operator{}).Count(&opCount)
	if opCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("DEFAULT_OPERATOR_PASSWORD", "frontdesk123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default operator password: %v", err)
		} else {
			op := models.Operator{
				FullName: "Front Desk",
				Username: "frontdesk@hotel.local",
				Password: string(hash),
			}
			if err := DB.Create(&op).Error; err != nil {
				log.Printf("warning: failed to create default operator: %v", err)
			} else {
				log.Println("Default operator seeded")
			}
		}
	}

	// ---------------- RoomTypes ----------------
	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{TypeName: "Standard", Description: "Standard Room", MaxGuests: 2},
			{TypeName: "Superior", Description: "Superior Room", MaxGuests: 3},
			{TypeName: "Deluxe", Description: "Deluxe Room", MaxGuests: 4},
			{TypeName: "Suite", Description: "Suite", MaxGuests: 5},
		}
		DB.Create(&roomTypes)
		log.Println("RoomTypes seeded")
	}

	// ---------------- TaxConfig ----------------
	var taxCount int64
	DB.Model(&models.TaxConfig{}).Count(&taxCount)
	if taxCount == 0 {
		tax := models.TaxConfig{
			CGSTPercent: decimal.NewFromInt(6),
			SGSTPercent: decimal.NewFromInt(6),
		}
		if err := DB.Create(&tax).Error; err != nil {
			log.Printf("warning: failed to seed tax config: %v", err)
		} else {
			log.Println("TaxConfig seeded (CGST 6%, SGST 6%)")
		}
	}

	// ---------------- HotelProfile ----------------
	var profileCount int64
	DB.Model(&models.HotelProfile{}).Count(&profileCount)
	if profileCount == 0 {
		profile := models.HotelProfile{
			Name:    envOrDefault("HOTEL_NAME", "Frontdesk Hotel"),
			Address: envOrDefault("HOTEL_ADDRESS", ""),
			Phone:   envOrDefault("HOTEL_PHONE", ""),
			Email:   envOrDefault("HOTEL_EMAIL", ""),
			GSTIN:   envOrDefault("HOTEL_GSTIN", ""),
		}
		if err := DB.Create(&profile).Error; err != nil {
			log.Printf("warning: failed to seed hotel profile: %v", err)
		} else {
			log.Println("HotelProfile seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order.
	if err := DB.AutoMigrate(
		&models.Operator{},
		&models.HotelProfile{},
		&models.TaxConfig{},
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
		&models.Booking{},
		&models.FolioCharge{},
		&models.Payment{},
		&models.ArchivedDocument{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
