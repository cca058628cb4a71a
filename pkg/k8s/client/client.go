// Copyright (c) 2025, The chefkoch Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// EnvKubeconfig names the environment variable holding a kubeconfig path.
const EnvKubeconfig = "KUBECONFIG"

// Interface is an alias for kubernetes.Interface so callers and tests can
// substitute fake.NewClientset().
type Interface = kubernetes.Interface

var (
	clientOnce   sync.Once
	cachedClient Interface
	cachedConfig *rest.Config
	clientErr    error
)

// GetKubeClient returns the process-wide client, building it on first use
// from the discovered kubeconfig or the in-cluster service account.
func GetKubeClient() (Interface, *rest.Config, error) {
	clientOnce.Do(func() {
		var cs *kubernetes.Clientset
		cs, cachedConfig, clientErr = BuildKubeClient("")
		if clientErr == nil {
			cachedClient = cs
		}
	})
	return cachedClient, cachedConfig, clientErr
}

// GetKubeClientWithConfig builds an uncached client for an explicit kubeconfig.
// An empty path behaves like GetKubeClient.
func GetKubeClientWithConfig(kubeconfig string) (Interface, *rest.Config, error) {
	if kubeconfig == "" {
		return GetKubeClient()
	}
	cs, cfg, err := BuildKubeClient(kubeconfig)
	if err != nil {
		return nil, nil, err
	}
	return cs, cfg, nil
}

// BuildKubeClient creates a client from kubeconfig, bypassing the cache.
// With an empty path it tries KUBECONFIG, then ~/.kube/config, then the
// in-cluster configuration.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	path := ResolveKubeconfig(kubeconfig)

	var config *rest.Config
	var err error
	if path == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", path, err)
		}
	}

	cs, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return cs, config, nil
}

// ResolveKubeconfig returns the kubeconfig path BuildKubeClient would use,
// or "" when only the in-cluster configuration remains.
func ResolveKubeconfig(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvKubeconfig); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}
