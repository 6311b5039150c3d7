package config

// RulesConfig represents the heuristic rule lists
type RulesConfig struct {
	KnownSenders      []string
	ImportantKeywords []string
	SpamTLDs          []string
	ShortenerDomains  []string
	PhishingPhrases   []string
}

// TriageConfig represents the batch-run settings
type TriageConfig struct {
	DryRun     bool
	HardDelete bool
	BatchSize  int64
	Views      []string
	RunOnce    bool
}

// LabelsConfig represents the managed label names
type LabelsConfig struct {
	Important  string
	Suspicious string
	Processed  string
}

// GmailConfig represents the configuration for the Gmail driver
type GmailConfig struct {
	CredentialsFile string
	TokenFile       string
	User            string
	MaxBodySize     int
}

// AuditConfig represents the configuration for the run journal
type AuditConfig struct {
	Type       string
	Enabled    bool
	SQLitePath string
	MySQLDSN   string
}

// GetRules returns the heuristic rule configuration
func (c *Config) GetRules() RulesConfig {
	return RulesConfig{
		KnownSenders:      c.GetStringSlice("rules.known_senders"),
		ImportantKeywords: c.GetStringSlice("rules.important_keywords"),
		SpamTLDs:          c.GetStringSlice("rules.spam_tlds"),
		ShortenerDomains:  c.GetStringSlice("rules.shortener_domains"),
		PhishingPhrases:   c.GetStringSlice("rules.phishing_phrases"),
	}
}

// GetTriage returns the batch-run configuration
func (c *Config) GetTriage() TriageConfig {
	return TriageConfig{
		DryRun:     c.GetBool("triage.dry_run"),
		HardDelete: c.GetBool("triage.hard_delete"),
		BatchSize:  c.GetInt64("triage.batch_size"),
		Views:      c.GetStringSlice("triage.views"),
		RunOnce:    c.GetBool("triage.run_once"),
	}
}

// GetLabels returns the managed label names
func (c *Config) GetLabels() LabelsConfig {
	return LabelsConfig{
		Important:  c.GetString("triage.labels.important"),
		Suspicious: c.GetString("triage.labels.suspicious"),
		Processed:  c.GetString("triage.labels.processed"),
	}
}

// GetGmail returns the Gmail driver configuration
func (c *Config) GetGmail() GmailConfig {
	return GmailConfig{
		CredentialsFile: c.GetString("gmail.credentials_file"),
		TokenFile:       c.GetString("gmail.token_file"),
		User:            c.GetString("mailbox.user"),
		MaxBodySize:     c.GetInt("gmail.max_body_size"),
	}
}

// GetAudit returns the run journal configuration
func (c *Config) GetAudit() AuditConfig {
	return AuditConfig{
		Type:       c.GetString("audit.type"),
		Enabled:    c.GetBool("audit.enabled"),
		SQLitePath: c.GetString("audit.sqlite_path"),
		MySQLDSN:   c.GetString("audit.mysql_dsn"),
	}
}
