// Package ruleset combines ruleset mods into one ruleset.
//
// A SourceSet is one mod's jsons/ folder. The Assembler feeds every set, in name order,
// through the accumulator, explodes consolidated units into one record per type variant,
// and returns a Ruleset holding the consolidated records, the combined nation, the
// filtered global abilities and a Manifest linking each output record to the base
// entity its assets come from.
//
// Output goes through a Sink: DirSink writes a directory, BucketSink uploads to object
// storage. The Catalog records manifests in a database, and the Service caches the
// latest ruleset for the HTTP handler.
//
// # Usage
//
//	sets, _ := ruleset.NewDirReader("Input", logger).Read(ctx)
//	rs, err := ruleset.NewAssembler(cfg, opts, logger).Assemble(ctx, sets)
//	if err != nil {
//	    return err
//	}
//	err = ruleset.WriteRuleset(ctx, ruleset.NewDirSink("Combined"), rs, logger)
package ruleset
