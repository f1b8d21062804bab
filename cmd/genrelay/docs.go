package main

// General API documentation for swaggo. The registered document lives in
// internal/httpapi/docs.
//
// @title           genrelay API
// @version         1.0
// @description     HTTP relay forwarding text, image, audio and PDF inputs to Gemini.
//
// @BasePath  /
//
// @schemes http
