// Package language normalizes the language codes found in transcripts.
//
// Recognizers report languages as ISO 639-1 codes, ISO 639-2 codes, English
// names, or full BCP 47 tags ("ja-JP", "pt_BR"). Everything that needs to
// branch on language (tokenizer selection, cue headers) goes through ToISO2.
package language
