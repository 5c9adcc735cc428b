package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/scolarite-dao/internal/dao"
	"github.com/noah-isme/scolarite-dao/internal/models"
	"github.com/noah-isme/scolarite-dao/internal/service"
	"github.com/noah-isme/scolarite-dao/pkg/export"
	"github.com/noah-isme/scolarite-dao/pkg/storage"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	reg       *dao.Registry
	metrics   *service.MetricsService
	exportDir string
	workers   int
	out       io.Writer
	errOut    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.errOut, "Usage: scolarite [-stats] <command> <action> [flags]")
	fmt.Fprintln(cli.errOut, "  etudiants|parcours|ues|notes list")
	fmt.Fprintln(cli.errOut, "  etudiants|parcours|ues|notes get|delete -id ID")
	fmt.Fprintln(cli.errOut, "  etudiants create|update [-id ID] -nom NOM -prenom PRENOM -email EMAIL [-parcours ID]")
	fmt.Fprintln(cli.errOut, "    update keeps the current track unless -parcours is given (0 detaches)")
	fmt.Fprintln(cli.errOut, "  parcours create|update [-id ID] -nom NOM -annee ANNEE")
	fmt.Fprintln(cli.errOut, "  ues create|update [-id ID] -intitule INTITULE -numero NUMERO [-parcours ID,ID]")
	fmt.Fprintln(cli.errOut, "  notes create -etudiant ID -ue ID -valeur NOTE")
	fmt.Fprintln(cli.errOut, "  notes update -id ID -valeur NOTE")
	fmt.Fprintln(cli.errOut, "  notes by-ue -ue ID | by-etudiant -etudiant ID | find -etudiant ID -ue ID")
	fmt.Fprintln(cli.errOut, "  export releve -etudiant ID [-format csv|pdf|xlsx]")
	fmt.Fprintln(cli.errOut, "  export ue -ue ID [-format csv|pdf|xlsx]")
	fmt.Fprintln(cli.errOut, "  export releves [-format csv|pdf|xlsx] [-workers N]")
	fmt.Fprintln(cli.errOut, "  export purge [-older 24h]")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	root := flag.NewFlagSet("scolarite", flag.ContinueOnError)
	root.SetOutput(cli.errOut)
	stats := root.Bool("stats", false, "Print DAO call statistics after the command.")
	if err := root.Parse(args[1:]); err != nil {
		return errHelp
	}
	rest := root.Args()
	if len(rest) < 2 {
		cli.printUsage()
		return errHelp
	}

	var err error
	switch rest[0] {
	case "etudiants":
		err = cli.etudiants(ctx, rest[1], rest[2:])
	case "parcours":
		err = cli.parcours(ctx, rest[1], rest[2:])
	case "ues":
		err = cli.ues(ctx, rest[1], rest[2:])
	case "notes":
		err = cli.notes(ctx, rest[1], rest[2:])
	case "export":
		err = cli.export(ctx, rest[1], rest[2:])
	default:
		cli.printUsage()
		return errHelp
	}
	if *stats {
		fmt.Fprintln(cli.errOut, "stats:")
		if printErr := cli.printJSON(cli.errOut, cli.metrics.Snapshot()); printErr != nil && err == nil {
			err = printErr
		}
	}
	return err
}

func (cli *commandLine) etudiants(ctx context.Context, action string, args []string) error {
	fs := cli.flags("etudiants " + action)
	id := fs.Int64("id", 0, "Student id.")
	nom := fs.String("nom", "", "Last name.")
	prenom := fs.String("prenom", "", "First name.")
	email := fs.String("email", "", "E-mail address.")
	parcoursID := fs.Int64("parcours", 0, "Training track id; 0 on update detaches the track.")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}

	build := func() models.Etudiant {
		e := models.Etudiant{Nom: *nom, Prenom: *prenom, Email: *email}
		if *parcoursID > 0 {
			e.Parcours = &models.Parcours{ID: *parcoursID}
		}
		return e
	}
	d := cli.reg.Etudiants
	switch action {
	case "list":
		return cli.emit(d.List(ctx))
	case "get":
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.emit(d.Get(ctx, *id))
	case "create":
		return cli.emit(d.Create(ctx, build()))
	case "update":
		if err := requireID(fs, *id); err != nil {
			return err
		}
		e := build()
		// The backend replaces the track on update; keep the current one
		// unless -parcours was given.
		if !flagSet(fs, "parcours") {
			current, err := d.Get(ctx, *id)
			if err != nil {
				return err
			}
			e.Parcours = current.Parcours
		}
		return cli.emit(d.Update(ctx, *id, e))
	case "delete":
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return d.Delete(ctx, *id)
	}
	cli.printUsage()
	return errHelp
}

func (cli *commandLine) parcours(ctx context.Context, action string, args []string) error {
	fs := cli.flags("parcours " + action)
	id := fs.Int64("id", 0, "Training track id.")
	nom := fs.String("nom", "", "Track name.")
	annee := fs.Int("annee", 0, "Training year.")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}

	build := func() models.Parcours {
		return models.Parcours{NomParcours: *nom, AnneeFormation: *annee}
	}
	d := cli.reg.Parcours
	switch action {
	case "list":
		return cli.emit(d.List(ctx))
	case "get":
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.emit(d.Get(ctx, *id))
	case "create":
		return cli.emit(d.Create(ctx, build()))
	case "update":
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.emit(d.Update(ctx, *id, build()))
	case "delete":
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return d.Delete(ctx, *id)
	}
	cli.printUsage()
	return errHelp
}

func (cli *commandLine) ues(ctx context.Context, action string, args []string) error {
	fs := cli.flags("ues " + action)
	id := fs.Int64("id", 0, "Course unit id.")
	intitule := fs.String("intitule", "", "Course unit title.")
	numero := fs.String("numero", "", "Course unit number.")
	parcoursIDs := fs.String("parcours", "", "Comma separated training track ids.")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}

	build := func() (models.UE, error) {
		u := models.UE{Intitule: *intitule, NumeroUe: *numero}
		ids, err := parseIDs(*parcoursIDs)
		if err != nil {
			return u, err
		}
		for _, pid := range ids {
			u.Parcours = append(u.Parcours, models.Parcours{ID: pid})
		}
		return u, nil
	}
	d := cli.reg.UEs
	switch action {
	case "list":
		return cli.emit(d.List(ctx))
	case "get":
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.emit(d.Get(ctx, *id))
	case "create":
		u, err := build()
		if err != nil {
			return err
		}
		return cli.emit(d.Create(ctx, u))
	case "update":
		if err := requireID(fs, *id); err != nil {
			return err
		}
		u, err := build()
		if err != nil {
			return err
		}
		return cli.emit(d.Update(ctx, *id, u))
	case "delete":
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return d.Delete(ctx, *id)
	}
	cli.printUsage()
	return errHelp
}

func (cli *commandLine) notes(ctx context.Context, action string, args []string) error {
	fs := cli.flags("notes " + action)
	id := fs.Int64("id", 0, "Grade id.")
	etudiantID := fs.Int64("etudiant", 0, "Student id.")
	ueID := fs.Int64("ue", 0, "Course unit id.")
	valeur := fs.Float64("valeur", -1, "Grade out of 20.")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}

	d := cli.reg.Notes
	switch action {
	case "list":
		return cli.emit(d.List(ctx))
	case "get":
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.emit(d.Get(ctx, *id))
	case "create":
		if *etudiantID <= 0 || *ueID <= 0 {
			fs.Usage()
			return errHelp
		}
		return cli.emit(d.Create(ctx, models.Note{Valeur: *valeur, EtudiantID: *etudiantID, UeID: *ueID}))
	case "update":
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return cli.emit(d.Update(ctx, *id, models.Note{Valeur: *valeur}))
	case "delete":
		if err := requireID(fs, *id); err != nil {
			return err
		}
		return d.Delete(ctx, *id)
	case "by-ue":
		if err := requireID(fs, *ueID); err != nil {
			return err
		}
		return cli.emit(d.ListByCourseUnit(ctx, *ueID))
	case "by-etudiant":
		if err := requireID(fs, *etudiantID); err != nil {
			return err
		}
		return cli.emit(d.ListByStudent(ctx, *etudiantID))
	case "find":
		if *etudiantID <= 0 || *ueID <= 0 {
			fs.Usage()
			return errHelp
		}
		return cli.printJSON(cli.out, d.FindByStudentAndCourseUnit(ctx, *etudiantID, *ueID))
	}
	cli.printUsage()
	return errHelp
}

func (cli *commandLine) export(ctx context.Context, action string, args []string) error {
	fs := cli.flags("export " + action)
	etudiantID := fs.Int64("etudiant", 0, "Student id.")
	ueID := fs.Int64("ue", 0, "Course unit id.")
	format := fs.String("format", string(export.FormatPDF), "Output format: csv, pdf or xlsx.")
	older := fs.Duration("older", 24*time.Hour, "Age of the documents to purge.")
	workers := fs.Int("workers", cli.workers, "Concurrent transcripts for a batch export.")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}

	store, err := storage.NewLocalStorage(cli.exportDir)
	if err != nil {
		return err
	}
	releves := service.NewReleveService(cli.reg.Etudiants, cli.reg.UEs, cli.reg.Notes, store, nil)
	switch action {
	case "releve":
		if err := requireID(fs, *etudiantID); err != nil {
			return err
		}
		return cli.emit(releves.Releve(ctx, *etudiantID, export.Format(strings.ToLower(*format))))
	case "ue":
		if err := requireID(fs, *ueID); err != nil {
			return err
		}
		return cli.emit(releves.FeuilleUE(ctx, *ueID, export.Format(strings.ToLower(*format))))
	case "releves":
		return cli.emit(releves.ReleveBatch(ctx, export.Format(strings.ToLower(*format)), *workers))
	case "purge":
		return cli.emit(store.CleanupOlderThan(*older))
	}
	cli.printUsage()
	return errHelp
}

func (cli *commandLine) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.errOut)
	return fs
}

// emit prints a successful result as indented JSON.
func (cli *commandLine) emit(v interface{}, err error) error {
	if err != nil {
		return err
	}
	return cli.printJSON(cli.out, v)
}

func (cli *commandLine) printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func requireID(fs *flag.FlagSet, id int64) error {
	if id <= 0 {
		fs.Usage()
		return errHelp
	}
	return nil
}

func parseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
