// Package config loads application configuration from environment
// variables (TASKHUB_ prefix) and an optional config file, then validates
// the result. Nothing else in the application reads ambient environment
// state: the API key, signing secret and connection string all arrive
// through the Config struct handed to constructors.
package config
