// Package config provides configuration management for the CMS server.
//
// Configuration is resolved in three layers, each overriding the previous:
//
//   - Built-in defaults
//   - The YAML file $CMS_CONFIG_PATH/cms.yml (default /etc/cms/cms.yml)
//   - Environment variables
//
// The source of every attribute is tracked so that `cmsctl configuration show`
// can report where a value came from.
//
// # Key Configuration Options
//
//   - CMS_DATA_DIR: users, pending changes and the token secret
//   - CMS_CONTENT_DIR: published JSON content tree
//   - CMS_MEDIA_DIR: media served under /imagenes/
//   - CMS_DEFAULT_LANG, CMS_LANGUAGES: content languages
//   - CMS_APPLY_ON_APPROVE: write approved payloads to the content store
//   - DATABASE_URL: postgres backend for users and pending changes
package config
