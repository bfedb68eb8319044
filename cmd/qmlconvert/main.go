// qmlconvert converts QML files from the command line: either straight
// into the question bank, or to a JSON dump for inspection.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/questbank/qmlbank/internal/bank"
	"github.com/questbank/qmlbank/internal/db"
	"github.com/questbank/qmlbank/internal/formats"
	_ "github.com/questbank/qmlbank/internal/formats/qml"
	"github.com/questbank/qmlbank/internal/i18n"
	"github.com/questbank/qmlbank/internal/question"
	"github.com/questbank/qmlbank/internal/templvars"
)

func main() {
	var (
		driver   = flag.String("driver", "", "store questions: sqlite|postgres (empty: dump JSON to stdout)")
		dsn      = flag.String("dsn", "", "database DSN")
		varsPath = flag.String("vars", "", "YAML template-variable file")
		category = flag.String("category", "", "target category name")
	)
	flag.Parse()

	log := logrus.New()
	if flag.NArg() == 0 {
		log.Fatal("usage: qmlconvert [flags] file.xml ...")
	}

	var vars *templvars.Store
	if *varsPath != "" {
		v, err := templvars.Load(*varsPath)
		if err != nil {
			log.WithError(err).Fatal("load template vars")
		}
		vars = v
	}

	factory, ok := formats.Lookup("qml")
	if !ok {
		log.Fatal("qml importer not registered")
	}
	importer := factory(formats.Options{Vars: vars, Messages: i18n.NewEnglish()})

	ctx := context.Background()
	var sink *bank.SQLStore
	if *driver != "" {
		dbh, err := db.Open(ctx, db.Driver(*driver), *dsn)
		if err != nil {
			log.WithError(err).Fatal("db open failed")
		}
		sink = bank.NewSQLStore(dbh)
	}

	var dump []map[string]any
	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			log.WithError(err).WithField("file", path).Fatal("open input")
		}
		res, err := importer.Import(ctx, f)
		f.Close()
		if err != nil {
			log.WithError(err).WithField("file", path).Fatal("import failed")
		}
		for _, n := range res.Notices {
			log.WithField("file", path).Warn(n)
		}

		categoryID := ""
		if sink != nil && *category != "" {
			categoryID, err = sink.PutCategory(ctx, *category)
			if err != nil {
				log.WithError(err).Fatal("create category")
			}
		}
		for _, q := range res.Questions {
			if cat, ok := q.(question.Category); ok {
				if sink != nil {
					categoryID, err = sink.PutCategory(ctx, cat.Name)
					if err != nil {
						log.WithError(err).Fatal("create category")
					}
				}
				continue
			}
			if sink != nil {
				if _, err := sink.PutQuestion(ctx, categoryID, q); err != nil {
					log.WithError(err).WithField("question", q.Head().Name).Fatal("store question")
				}
				continue
			}
			dump = append(dump, map[string]any{"kind": q.Kind(), "question": q})
		}
		log.WithFields(logrus.Fields{
			"file":      path,
			"questions": len(res.Questions),
			"notices":   len(res.Notices),
		}).Info("converted")
	}

	if sink == nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dump); err != nil {
			log.WithError(err).Fatal("encode output")
		}
	}
}
