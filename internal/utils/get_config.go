package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// OCR service
	OCRAPIURL string `yaml:"OCR_API_URL"`
	OCRAPIKey string `yaml:"OCR_API_KEY"`

	// Mail bridge service for email scan jobs
	MailBridgeURL string `yaml:"MAIL_BRIDGE_URL"`
	MailBridgeKey string `yaml:"MAIL_BRIDGE_KEY"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	// Environment variables take precedence over the YAML file.
	overrideFromEnv()
}

func overrideFromEnv() {
	set := func(target *string, key string) {
		if value := os.Getenv(key); value != "" {
			*target = value
		}
	}
	set(&config.DBUser, "DB_USER")
	set(&config.DBName, "DB_NAME")
	set(&config.DBPassword, "DB_PASSWORD")
	set(&config.DBPort, "DB_PORT")
	set(&config.DBHost, "DB_HOST")
	set(&config.JWTSecret, "JWT_SECRET")
	set(&config.AppURL, "APP_URL")
	set(&config.SMTPHost, "SMTP_HOST")
	set(&config.SMTPPort, "SMTP_PORT")
	set(&config.SMTPSenderName, "SMTP_SENDER_NAME")
	set(&config.SMTPAuthEmail, "SMTP_AUTH_EMAIL")
	set(&config.SMTPAuthPassword, "SMTP_AUTH_PASSWORD")
	set(&config.AWSS3Bucket, "AWS_S3_BUCKET")
	set(&config.AWSS3Region, "AWS_S3_REGION")
	set(&config.AWSAccessKey, "AWS_ACCESS_KEY")
	set(&config.AWSSecretKey, "AWS_SECRET_KEY")
	set(&config.OCRAPIURL, "OCR_API_URL")
	set(&config.OCRAPIKey, "OCR_API_KEY")
	set(&config.MailBridgeURL, "MAIL_BRIDGE_URL")
	set(&config.MailBridgeKey, "MAIL_BRIDGE_KEY")
}

func GetConfig(key string) string {
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "APP_URL":
		return config.AppURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "OCR_API_URL":
		return config.OCRAPIURL
	case "OCR_API_KEY":
		return config.OCRAPIKey
	case "MAIL_BRIDGE_URL":
		return config.MailBridgeURL
	case "MAIL_BRIDGE_KEY":
		return config.MailBridgeKey
	default:
		return ""
	}
}
