package cleanup

// phantomTasks are the pages found holding Motion ids with no matching
// Motion task.
var phantomTasks = []ClearTask{
	{"21d6c10e-5e22-804b-956f-facf282e8e58", "But isn't this the same as....", "Ho-z2IY7r7MS5fkcLWLlW"},
	{"21d6c10e-5e22-80c4-ae65-d0cff17cdd4c", "New Version of Pitch Deck", "ck1aHvcOaVgTY0Xxd37ZV"},
	{"21d6c10e-5e22-80ff-8010-e070eb6d0fff", "Create Pitch Script", "KetGzqHE-C_ac9ublkD9k"},
	{"21c6c10e-5e22-8196-b7cc-c54d5394d70b", "Rupert, Grietje, Umair as investor deck review", "l-AxCcjBu24uzmP6QM2_g"},
	{"21c6c10e-5e22-81fc-b55c-da10b09856ed", "Anna @ABI UK", "3cNdeOZkfnG9DkhSsCsAq"},
	{"21c6c10e-5e22-8187-bdff-cad1b89d04aa", "Grietje", "2aVamF-MehWX5TKLWfN2q"},
	{"21c6c10e-5e22-816e-a815-feab7aee1597", "Anna Fordkort", "S5AKaGWhox9Ns9RsQ0dUL"},
	{"21c6c10e-5e22-8175-8343-c51cb79ab181", "Onshelf - Survey v1", "FHBKDuaMYqogCF9Ct0TwZ"},
	{"21c6c10e-5e22-81d7-8326-e336427941c4", "Onshelf Client Discovery deck - Trade Marketing", "tLerQUWyfiDGhsPhBaLw5"},
	{"21c6c10e-5e22-81d9-8fb7-fa2ef4564ec9", "Benoit or Nom Watc: product / model", "7kx5Yy4TvoGEZQArablXj"},
	{"21c6c10e-5e22-81c3-84e2-f1da8ee513b4", "Den", "XnBOzgRDIvtCdp3TdnjnH"},
}

// PhantomTasks returns a copy of the fixed task table.
func PhantomTasks() []ClearTask {
	out := make([]ClearTask, len(phantomTasks))
	copy(out, phantomTasks)
	return out
}
