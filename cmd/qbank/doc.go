// Command qbank manages a local bank of exam questions: adding and editing
// records, filtering them with saved include/exclude tag selections,
// auto-tagging topics from keywords, and exporting filtered views as JSON.
package main
