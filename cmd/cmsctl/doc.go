// Command cmsctl runs and operates the country-content CMS backend.
//
// The server stores published content as JSON files under the content
// directory and keeps users and the moderation queue either in JSON files
// under the data directory or in postgres when DATABASE_URL is set.
//
// # Quick Start
//
//	# Start the server; the first run prints the generated admin password
//	cmsctl server
//
//	# Create an editor limited to one country
//	cmsctl user create maria --name "María" --countries ve
//
//	# Review what editors submitted
//	cmsctl pending list
//	cmsctl pending approve <id>
//
// # Environment Variables
//
//   - CMS_CONFIG_PATH: directory holding cms.yml (default /etc/cms)
//   - CMS_DATA_DIR, CMS_CONTENT_DIR, CMS_MEDIA_DIR: storage locations
//   - DATABASE_URL: postgres connection string for users and pending changes
//   - JWT_SECRET: session signing secret (generated under the data dir otherwise)
//   - ADMIN_INITIAL_PASSWORD: password of the bootstrap admin
//   - PORT: Server port (default: 3001)
package main
