package cmd

type Config struct {
	HTTPPort                         string
	ShopifyShopName                  string
	ShopifyAccessToken               string
	ShopifyAPIVersion                string
	ShopifyMaxRetries                int
	DelayAfterHomeLengthSplitSeconds int
	DelayAfterExternalSplitSeconds   int
	DelayAfterTagSeconds             int
}
