package watcher

import (
	"strings"

	"github.com/spf13/viper"
)

// Config controls which CloudTrail events trigger alerts and which instance
// tags drive them. Values come from AWSOPS_* env variables.
type Config struct {
	EventNames  []string // CloudTrail event names to alert on
	AlertTagKey string   // Instance tag holding the SNS topic ARN
	NameTagKey  string   // Instance tag used as the display name
}

// LoadConfig reads the watcher configuration from the environment:
// AWSOPS_EVENT_NAMES (comma separated), AWSOPS_ALERT_TAG_KEY, and
// AWSOPS_NAME_TAG_KEY.
func LoadConfig() Config {
	v := viper.New()
	v.SetEnvPrefix("awsops")
	v.AutomaticEnv()

	v.SetDefault("event_names", "RebootInstances")
	v.SetDefault("alert_tag_key", "alert_topic_arn")
	v.SetDefault("name_tag_key", "Name")

	var names []string
	for _, name := range strings.Split(v.GetString("event_names"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	return Config{
		EventNames:  names,
		AlertTagKey: v.GetString("alert_tag_key"),
		NameTagKey:  v.GetString("name_tag_key"),
	}
}
