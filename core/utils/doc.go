// Package utils provides text helpers shared by the serializers.
// FormatDescription wraps free text into fixed-width lines for the 'about' field.
package utils
