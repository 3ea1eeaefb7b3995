// Package gotlas provides an AI-assisted translation workspace.
//
// Gotlas translates text and images through a generative AI provider
// (OpenAI, Gemini) and keeps a bounded conversation history, a vocabulary
// notebook with spaced review, and a regex-based slang/idiom detector that
// feeds extra context into the translation prompt.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//	    "os"
//
//	    "github.com/ZaguanLabs/gotlas"
//	    "github.com/ZaguanLabs/gotlas/provider"
//	    "github.com/ZaguanLabs/gotlas/storage"
//	)
//
//	func main() {
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    store, err := storage.NewFileStore("") // defaults to ~/.gotlas
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    history := gotlas.NewHistoryStore(store)
//	    vocab := gotlas.NewVocabularyStore(store)
//
//	    t := gotlas.NewTranslator(p, history, vocab,
//	        gotlas.WithLanguages("en", "es"),
//	        gotlas.WithTone(gotlas.ToneCasual),
//	    )
//
//	    t.SetInput("Break a leg tonight!")
//	    result, err := t.Translate(context.Background())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result.TranslatedText)
//	}
package gotlas
