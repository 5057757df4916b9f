// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zwli/paperbatch/pkg/types"
)

// Configuration precedence: flag, then environment/config file via viper,
// then the .secrets/ directory (API key only). Defaults are filled by the
// stage packages, not here.

// stringSetting resolves a string with flag > viper precedence.
func stringSetting(cmd *cobra.Command, flag, viperKey string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return viper.GetString(viperKey)
}

// intSetting resolves an int with flag > viper precedence.
func intSetting(cmd *cobra.Command, flag, viperKey string) int {
	if v, _ := cmd.Flags().GetInt(flag); v != 0 {
		return v
	}
	return viper.GetInt(viperKey)
}

// aiConfigFromFlags assembles the shared chat-API settings for a command.
func aiConfigFromFlags(cmd *cobra.Command) types.AIConfig {
	cfg := types.AIConfig{
		BaseURL:   stringSetting(cmd, "base-url", "ai.base_url"),
		APIKey:    secretDefault("api-key", stringSetting(cmd, "api-key", "ai.api_key")),
		Model:     stringSetting(cmd, "model", "ai.model"),
		MaxTokens: intSetting(cmd, "max-tokens", "ai.max_tokens"),
	}
	cfg.Timeout = viper.GetDuration("ai.timeout")
	if t, _ := cmd.Flags().GetDuration("timeout"); t != 0 {
		cfg.Timeout = t
	}
	return cfg
}

// registerAIFlags adds the chat-API flags shared by summarize and report.
func registerAIFlags(cmd *cobra.Command) {
	cmd.Flags().String("base-url", "", "chat API base URL (e.g. https://api.siliconflow.cn/v1)")
	cmd.Flags().String("api-key", "", "chat API bearer token")
	cmd.Flags().String("model", "", "model identifier (e.g. deepseek-ai/DeepSeek-R1)")
	cmd.Flags().Int("max-tokens", 0, "response token cap (0 = omit from requests)")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (0 = none)")
	cmd.Flags().String("language", "", "reply language instruction (default en)")
}

// catalogSettings resolves whether and where runs are recorded. An empty
// dbPath means the default location under the input directory.
func catalogSettings(cmd *cobra.Command) (enabled bool, dbPath string) {
	if noCatalog, _ := cmd.Flags().GetBool("no-catalog"); noCatalog {
		return false, ""
	}
	if viper.IsSet("catalog.enabled") && !viper.GetBool("catalog.enabled") {
		return false, ""
	}
	dbPath = stringSetting(cmd, "catalog-db", "catalog.db_path")
	return true, dbPath
}
