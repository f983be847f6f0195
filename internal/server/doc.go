// Package server runs the HTTP listener that receives pushed server alerts.
package server
