// Package genai wraps the external generative text and image services and
// builds campaign-aware prompts on top of them.
//
// The raw HTTP adapters are deliberately thin: a single user-role prompt in,
// a primary text or image reference out. Retry policy, prompt construction,
// and response validation live in the generators that compose them.
package genai
