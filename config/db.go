package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"guesthouse-backend/models"

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
	dbName := envOrDefault("DB_NAME", "guesthouse_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
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

	// AutoMigrate ตามลำดับ parent -> child
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.AdminSession{},
		&models.PropertySetting{},
		&models.RoomCategory{},
		&models.Holiday{},
		&models.NotificationPolicy{},
		&models.Booking{},
		&models.PaymentTransaction{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase เติมข้อมูลตั้งต้นเมื่อตารางยังว่าง (idempotent)
func SeedDatabase() {
	// ---------------- Admin ----------------
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		password := envOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: envOrDefault("ADMIN_USERNAME", "admin@guesthouse.local"),
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- PropertySetting ----------------
	var settingCount int64
	DB.Model(&models.PropertySetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.PropertySetting{
			Name:             "Guesthouse",
			CurrencyCode:     "THB",
			WeekendSurcharge: true,
			DepositPercent:   50,
		}
		if err := DB.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed property setting: %v", err)
		}
	}

	// ---------------- RoomCategories ----------------
	var catCount int64
	DB.Model(&models.RoomCategory{}).Count(&catCount)
	if catCount == 0 {
		categories := []models.RoomCategory{
			{Name: "standard", DisplayName: "Standard Room", BasePrice: 2000, HolidaySurcharge: 500, Units: 1, DisplayOrder: 1},
			{Name: "superior", DisplayName: "Superior Room", BasePrice: 2800, HolidaySurcharge: 600, Units: 1, DisplayOrder: 2},
			{Name: "deluxe", DisplayName: "Deluxe Room", BasePrice: 3500, HolidaySurcharge: 800, Units: 1, DisplayOrder: 3},
		}
		if err := DB.Create(&categories).Error; err != nil {
			log.Printf("warning: failed to seed room categories: %v", err)
		} else {
			log.Println("Room categories seeded")
		}
	}

	// ---------------- NotificationPolicies ----------------
	// หนึ่ง row ต่อ kind เสมอ (แก้ค่าได้ผ่าน admin API แต่เพิ่ม/ลบ kind ไม่ได้)
	defaults := map[models.NotificationKind]models.NotificationPolicy{
		models.KindPaymentReminder: {Enabled: true, OffsetDays: 3, DispatchHour: 10},
		models.KindCheckinReminder: {Enabled: true, OffsetDays: 1, DispatchHour: 9},
		models.KindFeedbackRequest: {Enabled: true, OffsetDays: 1, DispatchHour: 17},
	}
	for _, kind := range models.AllNotificationKinds {
		var existing models.NotificationPolicy
		err := DB.Where("kind = ?", kind).First(&existing).Error
		if err == nil {
			continue
		}
		p := defaults[kind]
		p.Kind = kind
		if err := DB.Create(&p).Error; err != nil {
			log.Printf("warning: failed to seed policy %s: %v", kind, err)
		}
	}
	log.Println("Notification policies ensured")
}
