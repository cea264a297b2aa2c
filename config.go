package main

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	RedisAddr            string
	RedisPassword        string
	RedisReactionChannel string

	SlackBotToken string

	TriggerEmoji      string
	TargetChannelName string

	JiraBaseURL      string
	JiraEmail        string
	JiraAPIToken     string
	JiraProjectKey   string
	JiraIssueType    string
	JiraRequestType  string
	JiraCustomFields map[string]interface{}

	FieldAliasFile string
	DedupTTL       int
	LogLevel       string
}

func loadConfig() Config {
	return Config{
		RedisAddr:            getEnv("REDIS_ADDR", "host.docker.internal:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisReactionChannel: getEnv("REDIS_REACTION_CHANNEL", "slack-relay-reaction-added"),
		SlackBotToken:        getEnv("SLACK_BOT_TOKEN", ""),
		TriggerEmoji:         getEnv("TRIGGER_EMOJI", "ticket"),
		TargetChannelName:    getEnv("TARGET_CHANNEL_NAME", ""),
		JiraBaseURL:          getEnv("JIRA_BASE_URL", ""),
		JiraEmail:            getEnv("JIRA_EMAIL", ""),
		JiraAPIToken:         getEnv("JIRA_API_TOKEN", ""),
		JiraProjectKey:       getEnv("JIRA_PROJECT_KEY", ""),
		JiraIssueType:        getEnv("JIRA_ISSUE_TYPE", "Task"),
		JiraRequestType:      getEnv("JIRA_REQUEST_TYPE", ""),
		JiraCustomFields:     getEnvAsJSONObject("JIRA_CUSTOM_FIELDS"),
		FieldAliasFile:       getEnv("FIELD_ALIAS_FILE", ""),
		DedupTTL:             getEnvAsIntSeconds("DEDUP_TTL", "168h"),
		LogLevel:             getEnv("LOG_LEVEL", "INFO"),
	}
}

// getEnvAsJSONObject parses the variable as a JSON object. An unset variable
// yields nil; a malformed one is logged and ignored rather than aborting startup.
func getEnvAsJSONObject(key string) map[string]interface{} {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(val), &obj); err != nil {
		log.Printf("Unable to parse %s as JSON object: %v; ignoring", key, err)
		return nil
	}
	return obj
}

func getEnvAsIntSeconds(key, defaultValue string) int {
	val := os.Getenv(key)
	if val == "" {
		val = defaultValue
	}
	if i, err := strconv.Atoi(val); err == nil {
		return i
	}
	if d, err := time.ParseDuration(val); err == nil {
		return int(d.Seconds())
	}
	log.Printf("Unable to parse %s=%q as int seconds or duration; defaulting to 0", key, val)
	return 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
