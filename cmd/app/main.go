package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"fulfillment/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()

	app, err := cmd.NewCompositionRoot(
		configs,
	)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                         goDotEnvVariable("HTTP_PORT"),
		ShopifyShopName:                  goDotEnvVariable("SHOPIFY_SHOP_NAME"),
		ShopifyAccessToken:               goDotEnvVariable("SHOPIFY_PASSWORD"),
		ShopifyAPIVersion:                goDotEnvVariable("SHOPIFY_API_VERSION"),
		ShopifyMaxRetries:                intEnvVariable("SHOPIFY_MAX_RETRIES"),
		DelayAfterHomeLengthSplitSeconds: intEnvVariable("DELAY_AFTER_HOME_LENGTH_SPLIT_SECONDS"),
		DelayAfterExternalSplitSeconds:   intEnvVariable("DELAY_AFTER_EXTERNAL_SPLIT_SECONDS"),
		DelayAfterTagSeconds:             intEnvVariable("DELAY_AFTER_TAG_SECONDS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnvVariable(key string) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid integer value for %s: %v", key, err)
	}
	return value
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
